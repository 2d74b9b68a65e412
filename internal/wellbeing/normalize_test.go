package wellbeing

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyCandidate(t *testing.T) {
	want := AnalysisRecord{
		Mood:            "neutral",
		StressLevel:     5,
		WorkloadLevel:   5,
		Tags:            []string{},
		Recommendations: []string{"Take regular breaks", "Stay organized", "Reach out for support"},
		Summary:         "Analysis complete.",
	}
	if diff := cmp.Diff(want, Normalize(Candidate{})); diff != "" {
		t.Fatalf("Normalize({}) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Normalize(nil)); diff != "" {
		t.Fatalf("Normalize(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeLevelsClampIntegers(t *testing.T) {
	faker := gofakeit.New(7)
	values := []int{math.MinInt32, -1000, -1, 0, 1, 5, 10, 11, 1000, math.MaxInt32}
	for i := 0; i < 200; i++ {
		values = append(values, faker.IntRange(-10000, 10000))
	}

	for _, v := range values {
		got := Normalize(Candidate{"stressLevel": v}).StressLevel
		require.GreaterOrEqual(t, got, MinLevel, "v=%d", v)
		require.LessOrEqual(t, got, MaxLevel, "v=%d", v)
		switch {
		case v < 1:
			assert.Equal(t, 1, got, "v=%d", v)
		case v > 10:
			assert.Equal(t, 10, got, "v=%d", v)
		default:
			assert.Equal(t, v, got, "v=%d", v)
		}
	}
}

func TestNormalizeLevelCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"not a number", "not a number", 5},
		{"empty string", "", 5},
		{"numeric string", "7", 7},
		{"leading integer", " 8/10", 8},
		{"decimal string truncates", "6.9 out of 10", 6},
		{"negative string", "-3", 1},
		{"huge string", "99999999999999999999", 10},
		{"float truncates", 7.9, 7},
		{"negative float", -0.5, 1},
		{"json number", json.Number("4"), 4},
		{"json float number", json.Number("9.99"), 9},
		{"json out of range number", json.Number("1e400"), 5},
		{"nan", math.NaN(), 5},
		{"inf", math.Inf(1), 5},
		{"bool", true, 5},
		{"nil", nil, 5},
		{"single element list", []any{7}, 7},
		{"list reads first element", []any{"8", 2}, 8},
		{"empty list", []any{}, 5},
		{"list of objects", []any{map[string]any{"v": 3}}, 5},
		{"hex string", "0x1A", 10},
		{"small hex string", "0x3", 3},
		{"bare hex prefix", "0x", 5},
		{"exponent float", 1.5e21, 1},
		{"tiny float", 5e-7, 5},
		{"json exponent number", json.Number("7e21"), 7},
		{"object", map[string]any{"v": 3}, 5},
		{"int64", int64(3), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(Candidate{"workloadLevel": tc.in}).WorkloadLevel
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeTextFields(t *testing.T) {
	got := Normalize(Candidate{"mood": "calm", "summary": "All good."})
	assert.Equal(t, "calm", got.Mood)
	assert.Equal(t, "All good.", got.Summary)

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, DefaultMood},
		{"empty string", "", DefaultMood},
		{"false", false, DefaultMood},
		{"zero", 0.0, DefaultMood},
		{"json zero", json.Number("0"), DefaultMood},
		{"nan", math.NaN(), DefaultMood},
		{"number", 42.0, "42"},
		{"json number", json.Number("42"), "42"},
		{"true", true, "true"},
		{"list", []any{"stressed", "tired"}, `["stressed","tired"]`},
		{"empty list", []any{}, "[]"},
		{"object", map[string]any{"k": "v"}, `{"k":"v"}`},
		{"whitespace kept", "  calm ", "  calm "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(Candidate{"mood": tc.in}).Mood)
		})
	}

	got = Normalize(Candidate{"mood": 42.0, "summary": true})
	assert.Equal(t, "42", got.Mood)
	assert.Equal(t, "true", got.Summary)
	assert.Equal(t, DefaultSummary, Normalize(Candidate{"summary": false}).Summary)
}

func TestNormalizeLists(t *testing.T) {
	tags := []any{"t1", "t2", "t3", "t4", "t5", "t6", "t7"}
	assert.Equal(t, []string{"t1", "t2", "t3", "t4", "t5"}, Normalize(Candidate{"tags": tags}).Tags)
	assert.Equal(t, []string{}, Normalize(Candidate{"tags": "x"}).Tags)

	recs := []any{"r1", "r2", "r3", "r4", "r5"}
	assert.Equal(t, []string{"r1", "r2", "r3"}, Normalize(Candidate{"recommendations": recs}).Recommendations)
	assert.Equal(t, DefaultRecommendations, Normalize(Candidate{"recommendations": "x"}).Recommendations)

	mixed := []any{"a", json.Number("2"), true, nil, map[string]any{"k": "v"}}
	assert.Equal(t, []string{"a", "2", "true", "null", `{"k":"v"}`}, Normalize(Candidate{"tags": mixed}).Tags)
}

func TestNormalizeDefaultListIsNotShared(t *testing.T) {
	got := Normalize(Candidate{})
	got.Recommendations[0] = "mutated"
	assert.Equal(t, "Take regular breaks", DefaultRecommendations[0])
}

func TestNormalizeIdempotent(t *testing.T) {
	faker := gofakeit.New(11)
	for i := 0; i < 100; i++ {
		tags := make([]string, faker.IntRange(0, MaxTags))
		for j := range tags {
			tags[j] = faker.Word()
		}
		recs := make([]string, faker.IntRange(0, MaxRecommendations))
		for j := range recs {
			recs[j] = faker.Sentence(6)
		}
		r := AnalysisRecord{
			Mood:            faker.Word(),
			StressLevel:     faker.IntRange(MinLevel, MaxLevel),
			WorkloadLevel:   faker.IntRange(MinLevel, MaxLevel),
			Tags:            tags,
			Recommendations: recs,
			Summary:         faker.Sentence(10),
		}

		once := Normalize(r.Candidate())
		if diff := cmp.Diff(r, once); diff != "" {
			t.Fatalf("canonical record changed (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(once, Normalize(once.Candidate())); diff != "" {
			t.Fatalf("second pass changed record (-want +got):\n%s", diff)
		}
	}
}

func TestNormalizeDecodedModelOutput(t *testing.T) {
	raw := `{"mood":"Anxious","stressLevel":"8","workloadLevel":12.5,"tags":["exams"],"recommendations":["Sleep"],"summary":"` + strings.Repeat("x", 3) + `"}`
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var c map[string]any
	require.NoError(t, dec.Decode(&c))

	got := Normalize(Candidate(c))
	assert.Equal(t, AnalysisRecord{
		Mood:            "Anxious",
		StressLevel:     8,
		WorkloadLevel:   10,
		Tags:            []string{"exams"},
		Recommendations: []string{"Sleep"},
		Summary:         "xxx",
	}, got)
}
