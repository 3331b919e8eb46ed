package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TagList
		wantErr bool
	}{
		{name: "list", input: `["go","db"]`, want: TagList{"go", "db"}},
		{name: "comma string", input: `"go,db"`, want: TagList{"go", "db"}},
		{name: "empty string", input: `""`, want: TagList{}},
		{name: "null", input: `null`, want: TagList{}},
		{name: "drops empty entries", input: `["go","","db"]`, want: TagList{"go", "db"}},
		{name: "number is rejected", input: `42`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TagList
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Flag
		wantErr bool
	}{
		{input: `true`, want: true},
		{input: `false`, want: false},
		{input: `1`, want: true},
		{input: `0`, want: false},
		{input: `2`, want: true},
		{input: `null`, want: false},
		{input: `"1"`, want: true},
		{input: `"0"`, want: false},
		{input: `"false"`, want: false},
		{input: `"FALSE"`, want: false},
		{input: `"true"`, want: true},
		{input: `"yes"`, want: true},
		{input: `""`, want: false},
		{input: `[1]`, wantErr: true},
		{input: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var in MessageInput
			err := json.Unmarshal([]byte(`{"content":"hi","isPrivate":`+tt.input+`}`), &in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && in.IsPrivate != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, in.IsPrivate)
			}
		})
	}
}

func TestTagList_StorageRoundTrip(t *testing.T) {
	tags := TagList{"golang", "databases", "sql tips"}

	stored := tags.String()
	if stored != "golang,databases,sql tips" {
		t.Errorf("Unexpected stored form %q", stored)
	}

	if got := ParseTags(stored); !reflect.DeepEqual(got, tags) {
		t.Errorf("Round trip mismatch: %v != %v", got, tags)
	}

	if got := ParseTags(""); len(got) != 0 {
		t.Errorf("Expected no tags, got %v", got)
	}
}

func TestTagList_MarshalNil(t *testing.T) {
	a := Article{Title: "t"}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatal(err)
	}

	var out map[string]interface{}
	json.Unmarshal(data, &out)
	if tags, ok := out["tags"].([]interface{}); !ok || len(tags) != 0 {
		t.Errorf("Expected empty tag list, got %v", out["tags"])
	}
}

func TestBatchResult_Summary(t *testing.T) {
	var r BatchResult
	r.Record(nil)
	if r.Summary() != "" {
		t.Errorf("Expected empty summary, got %q", r.Summary())
	}

	for _, msg := range []string{"e1", "e2", "e3", "e4", "e5"} {
		r.Record(errors.New(msg))
	}

	if r.SuccessCount != 1 || r.ErrorCount != 5 {
		t.Errorf("Expected 1/5, got %d/%d", r.SuccessCount, r.ErrorCount)
	}
	if got := r.Summary(); got != "e1; e2; e3 (and 2 more)" {
		t.Errorf("Unexpected summary %q", got)
	}
}

func TestBatchOp_RequiredStatus(t *testing.T) {
	if BatchDelete.RequiredStatus() != ArticleDraft {
		t.Error("delete should require draft")
	}
	if BatchPublish.RequiredStatus() != ArticleDraft {
		t.Error("publish should require draft")
	}
	if BatchUnpublish.RequiredStatus() != ArticlePublished {
		t.Error("unpublish should require published")
	}
}

func TestPage_Offset(t *testing.T) {
	if got := (Page{Page: 3, PageSize: 10}).Offset(); got != 20 {
		t.Errorf("Expected offset 20, got %d", got)
	}
}
