package analysis

import (
	"strings"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

// Label tables are ordered slices, not maps: a free-text model answer can
// substring-match more than one label and the first match must be stable.

var sentimentLabels = []struct {
	label string
	value entities.SentimentType
}{
	{"흥분/기대", entities.SentimentExcited},
	{"걱정/우려", entities.SentimentWorried},
	{"긍정", entities.SentimentPositive},
	{"부정", entities.SentimentNegative},
	{"중립", entities.SentimentNeutral},
	{"흥분", entities.SentimentExcited},
	{"기대", entities.SentimentExcited},
	{"걱정", entities.SentimentWorried},
	{"우려", entities.SentimentWorried},
	{"화남", entities.SentimentAngry},
	{"만족", entities.SentimentSatisfied},
}

var customerStateLabels = []struct {
	label string
	value entities.CustomerState
}{
	{"구매 준비됨", entities.CustomerStateReadyToBuy},
	{"관심 있음", entities.CustomerStateInterested},
	{"관심 없음", entities.CustomerStateNotInterested},
	{"고민 중", entities.CustomerStateConsidering},
	{"불만족", entities.CustomerStateDissatisfied},
	{"망설임", entities.CustomerStateHesitant},
	{"만족", entities.CustomerStateSatisfied},
}

// NormalizeSentiment maps a free-text model answer onto the sentiment enum:
// exact label match, then substring match in either direction, then neutral.
func NormalizeSentiment(raw string) entities.SentimentType {
	value := strings.TrimSpace(raw)
	if value == "" {
		return entities.SentimentNeutral
	}

	for _, entry := range sentimentLabels {
		if value == entry.label {
			return entry.value
		}
	}
	for _, entry := range sentimentLabels {
		if strings.Contains(value, entry.label) || strings.Contains(entry.label, value) {
			return entry.value
		}
	}
	return entities.SentimentNeutral
}

// NormalizeCustomerState maps a free-text model answer onto the customer
// state enum, defaulting to "considering".
func NormalizeCustomerState(raw string) entities.CustomerState {
	value := strings.TrimSpace(raw)
	if value == "" {
		return entities.CustomerStateConsidering
	}

	for _, entry := range customerStateLabels {
		if value == entry.label {
			return entry.value
		}
	}
	for _, entry := range customerStateLabels {
		if strings.Contains(value, entry.label) || strings.Contains(entry.label, value) {
			return entry.value
		}
	}
	return entities.CustomerStateConsidering
}
