package database

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSessionQueryBuild(t *testing.T) {
	query, args := NewSessionQuery().WhereUser("u1").WhereTagged("calm").Limit(5).Build()
	want := "SELECT " + sessionColumns + " FROM sessions WHERE user_id = ? AND tags LIKE ? ORDER BY completed_at DESC, id ASC LIMIT 5"
	if query != want {
		t.Fatalf("unexpected query:\n got %s\nwant %s", query, want)
	}
	if diff := cmp.Diff([]interface{}{"u1", `%"calm%`}, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}

	query, args = NewSessionQuery().OrderBy("").Build()
	if query != "SELECT "+sessionColumns+" FROM sessions" || len(args) != 0 {
		t.Fatalf("unexpected bare query %q %v", query, args)
	}
}

func TestNullableHelpers(t *testing.T) {
	if got := nullableString("   "); got.Valid {
		t.Fatalf("expected blank string to be NULL")
	}
	if got := nullableString("note"); !got.Valid || got.String != "note" {
		t.Fatalf("expected nullableString(\"note\") to be valid, got %+v", got)
	}
	if got := toNullableArg[string](nil); got != nil {
		t.Fatalf("expected toNullableArg(nil) to return nil, got %v", got)
	}
	v := "x"
	if got := toNullableArg(&v); got != "x" {
		t.Fatalf("expected toNullableArg(&x) to return x, got %v", got)
	}
}
