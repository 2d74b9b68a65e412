package wellbeing

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MoodOverwhelmed is the most severe category the local classifier can assign.
const MoodOverwhelmed = "overwhelmed"

type keywordGroup struct {
	keywords      []string
	mood          string
	stressLevel   int
	workloadLevel int
	tags          []string
}

// Order matters: the first group with a matching keyword wins.
var keywordGroups = []keywordGroup{
	{
		keywords:      []string{"overwhelmed", "too much", "can't cope"},
		mood:          MoodOverwhelmed,
		stressLevel:   9,
		workloadLevel: 9,
		tags:          []string{"overwhelmed", "deadlines", "pressure", "burnout"},
	},
	{
		keywords:      []string{"anxious", "worried", "nervous"},
		mood:          "anxious",
		stressLevel:   8,
		workloadLevel: 7,
		tags:          []string{"anxiety", "worry", "exams", "stress"},
	},
	{
		keywords:      []string{"exam", "test"},
		mood:          "stressed",
		stressLevel:   8,
		workloadLevel: 8,
		tags:          []string{"exams", "revision", "academic pressure", "deadlines"},
	},
	{
		keywords:      []string{"sleep", "tired", "exhausted"},
		mood:          "tired",
		stressLevel:   7,
		workloadLevel: 8,
		tags:          []string{"sleep deprivation", "fatigue", "rest", "health"},
	},
	{
		keywords:      []string{"lonely", "homesick", "friends"},
		mood:          "lonely",
		stressLevel:   6,
		workloadLevel: 5,
		tags:          []string{"social", "homesickness", "isolation", "support"},
	},
	{
		keywords:      []string{"happy", "good", "great"},
		mood:          "motivated",
		stressLevel:   3,
		workloadLevel: 5,
		tags:          []string{"positive", "progress", "balanced", "wellbeing"},
	},
}

var defaultGroup = keywordGroup{
	mood:          "stressed",
	stressLevel:   7,
	workloadLevel: 7,
	tags:          []string{"studying", "university", "assignments"},
}

var localRecommendations = []string{
	"Break your tasks into smaller, manageable chunks. Try the Pomodoro Technique: 25 minutes of focused work followed by a 5-minute break. This helps maintain productivity without burnout.",
	"Reach out to Lancaster's Student Wellbeing Service or your personal tutor. They're here to help and can provide support, extensions, or guidance tailored to your situation.",
	"Prioritize self-care: ensure you get 7-8 hours of sleep, take regular breaks, and engage in activities you enjoy. Your mental health is just as important as your academic performance.",
}

const summaryTemplate = "Based on your input, you're experiencing %s stress. Remember that it's completely normal to feel this way during university, and there are resources and strategies available to help you manage effectively."

// typographic apostrophes are folded so "can’t cope" matches like "can't cope".
var apostropheFolder = strings.NewReplacer("’", "'", "‘", "'")

// Classify runs the deterministic keyword classifier and normalizes its draft.
func Classify(text string) AnalysisRecord {
	return Normalize(Draft(text))
}

// Draft builds the classifier's candidate for text without normalizing it.
func Draft(text string) Candidate {
	group := matchGroup(foldText(text))

	severity := "moderate"
	if group.mood == MoodOverwhelmed {
		severity = "significant"
	}

	return Candidate{
		"mood":            group.mood,
		"stressLevel":     group.stressLevel,
		"workloadLevel":   group.workloadLevel,
		"tags":            append([]string(nil), group.tags...),
		"recommendations": append([]string(nil), localRecommendations...),
		"summary":         fmt.Sprintf(summaryTemplate, severity),
	}
}

func matchGroup(lowered string) keywordGroup {
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lowered, kw) {
				return g
			}
		}
	}
	return defaultGroup
}

func foldText(text string) string {
	return apostropheFolder.Replace(cases.Lower(language.Und).String(text))
}
