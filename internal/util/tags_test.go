package util

import (
	"reflect"
	"testing"
)

func TestNoteTagsUniqueLowercase(t *testing.T) {
	input := "Felt #Calm after the bell, #calm and #sleepy"
	got := NoteTags(input)
	want := []string{"calm", "sleepy"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NoteTags() = %v, want %v", got, want)
	}
}

func TestNoteTagsKeepsHyphens(t *testing.T) {
	got := NoteTags("tried #body-scan today")
	if len(got) != 1 || got[0] != "body-scan" {
		t.Fatalf("NoteTags() = %v, want [body-scan]", got)
	}
}

func TestTagsJSONRoundTrip(t *testing.T) {
	tags := []string{"one", "two"}
	got := JSONToTags(TagsToJSON(tags))
	if !reflect.DeepEqual(got, tags) {
		t.Fatalf("JSONToTags(TagsToJSON()) = %v, want %v", got, tags)
	}
}

func TestJSONToTagsEmptyAndMalformed(t *testing.T) {
	if got := JSONToTags(""); len(got) != 0 {
		t.Fatalf("JSONToTags(\"\") = %v, want empty", got)
	}
	if got := JSONToTags("{nope"); len(got) != 0 {
		t.Fatalf("JSONToTags(malformed) = %v, want empty", got)
	}
}

func TestHasTag(t *testing.T) {
	tags := []string{"calm", "sleepy"}
	if !HasTag(tags, "#Calm") {
		t.Fatalf("expected #Calm to match")
	}
	if HasTag(tags, "anxious") {
		t.Fatalf("did not expect anxious to match")
	}
}
