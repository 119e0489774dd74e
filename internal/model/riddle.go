package model

import "strings"

// AnswerSeparator is the full-width semicolon used in the dataset to join
// alternative answers for one riddle.
const AnswerSeparator = "；"

// RiddleEntry is a single xiehouyu: the riddle half and its answer half.
// The answer may carry several accepted variants joined by AnswerSeparator.
type RiddleEntry struct {
	Riddle string `json:"riddle"`
	Answer string `json:"answer"`
}

// CanonicalAnswer returns the entry's canonical answer: the text before the
// first variant separator, trimmed.
func (e RiddleEntry) CanonicalAnswer() string {
	return CanonicalAnswer(e.Answer)
}

// CanonicalAnswer strips everything from the first variant separator onward.
func CanonicalAnswer(answer string) string {
	if idx := strings.Index(answer, AnswerSeparator); idx >= 0 {
		answer = answer[:idx]
	}
	return strings.TrimSpace(answer)
}

// AnswerVariants splits an answer into all of its accepted variants.
func AnswerVariants(answer string) []string {
	parts := strings.Split(answer, AnswerSeparator)
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			variants = append(variants, trimmed)
		}
	}
	return variants
}

// DatasetStats summarizes a loaded riddle dataset
type DatasetStats struct {
	Total           int     `json:"total"`
	UniqueRiddles   int     `json:"unique_riddles"`
	UniqueAnswers   int     `json:"unique_answers"`
	MultiAnswer     int     `json:"multi_answer"`
	AvgRiddleLength float64 `json:"avg_riddle_length"`
	AvgAnswerLength float64 `json:"avg_answer_length"`
}
