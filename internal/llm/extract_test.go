package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"mood":"calm"}`, want: `{"mood":"calm"}`},
		{name: "json fence", in: "```json\n{\"mood\":\"calm\"}\n```", want: `{"mood":"calm"}`},
		{name: "generic fence", in: "```\n{\"mood\":\"calm\"}\n```\n", want: `{"mood":"calm"}`},
		{name: "padded", in: "  \n```json\n{}\n```  ", want: `{}`},
		{name: "no newline after marker", in: "```json{\"a\":1}```", want: `{"a":1}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Fatalf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeCandidate(t *testing.T) {
	obj, err := DecodeCandidate("```json\n{\"mood\":\"anxious\",\"stressLevel\":8}\n```")
	if err != nil {
		t.Fatalf("DecodeCandidate: %v", err)
	}
	if obj["mood"] != "anxious" {
		t.Fatalf("unexpected mood: %v", obj["mood"])
	}
	if n, ok := obj["stressLevel"].(json.Number); !ok || n.String() != "8" {
		t.Fatalf("expected json.Number 8, got %#v", obj["stressLevel"])
	}
}

func TestDecodeCandidateNonObjectsHaveNoFields(t *testing.T) {
	for _, in := range []string{`["stressed","tired"]`, `"just text"`, `42`, `true`} {
		obj, err := DecodeCandidate(in)
		if err != nil {
			t.Fatalf("DecodeCandidate(%q): %v", in, err)
		}
		if len(obj) != 0 {
			t.Fatalf("DecodeCandidate(%q) = %v, want empty object", in, obj)
		}
	}
}

func TestDecodeCandidateRejectsNull(t *testing.T) {
	if _, err := DecodeCandidate("```json\nnull\n```"); !errors.Is(err, ErrNullPayload) {
		t.Fatalf("error = %v, want ErrNullPayload", err)
	}
}

func TestDecodeCandidateRejectsGarbage(t *testing.T) {
	for _, in := range []string{
		"",
		"```json\n```",
		"I'm sorry, I can't help with that.",
		"{mood: calm",
		"Sure! Here is the analysis: {\"mood\":\"calm\"} Hope it helps",
		`{"mood":"calm"} {"mood":"sad"}`,
	} {
		if _, err := DecodeCandidate(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
