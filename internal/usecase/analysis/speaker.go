package analysis

import (
	"strings"
	"unicode/utf8"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

// Interrogative markers typical of a customer asking about a product.
var questionKeywords = []string{
	"어떻게", "뭐", "무엇", "왜", "어디", "언제", "얼마", "어느", "?",
}

// Phrases an agent uses when opening a call (formal self-introduction,
// honorifics toward the other party).
var agentGreetingPatterns = []string{
	"입니다", "되십니까", "도와드리겠습니다", "안녕하세요 ", "감사합니다", "고객님",
}

// Phrases a customer uses when opening a call (stating the reason for
// calling).
var customerOpeningPatterns = []string{
	"문의", "알아보", "궁금", "상담", "신청", "가입", "전화했", "듣고 싶", "받고 싶",
}

const (
	questionScore      = 2
	greetingPenalty    = 3
	openingBonus       = 5
	shorterTalkerBonus = 3

	// Sentinel label for empty input, matching the STT provider's first
	// speaker label.
	defaultSpeakerLabel = "A"

	// A customer on an inbound sales call usually talks much less than the
	// agent. Only a clear imbalance earns the bonus.
	talkRatioThreshold = 0.7
)

// DetectCustomerSpeaker scores each speaker on interrogative keywords, agent
// greeting phrases, the call-opening phrase and talk-time balance, and
// returns the label most likely to be the customer. Ties resolve to the
// speaker who appeared first, so repeated runs over the same transcript give
// the same answer.
func DetectCustomerSpeaker(utterances []entities.Utterance, segments []entities.SpeakerSegment) string {
	if len(utterances) == 0 {
		return defaultSpeakerLabel
	}

	order := make([]string, 0, 2)
	seen := make(map[string]bool)
	for _, u := range utterances {
		if !seen[u.Speaker] {
			seen[u.Speaker] = true
			order = append(order, u.Speaker)
		}
	}
	if len(order) == 1 {
		return order[0]
	}

	scores := make(map[string]int, len(order))

	for i, u := range utterances {
		for _, kw := range questionKeywords {
			if strings.Contains(u.Text, kw) {
				scores[u.Speaker] += questionScore
			}
		}

		// Agent greetings cluster at the start of the call.
		if i < 3 {
			for _, pattern := range agentGreetingPatterns {
				if strings.Contains(u.Text, pattern) {
					scores[u.Speaker] -= greetingPenalty
				}
			}
		}

		// Whoever states the reason for the call in the very first
		// utterance is almost certainly the customer. One bonus, no
		// stacking per pattern.
		if i == 0 {
			for _, pattern := range customerOpeningPatterns {
				if strings.Contains(u.Text, pattern) {
					scores[u.Speaker] += openingBonus
					break
				}
			}
		}
	}

	if len(segments) == 2 {
		a, b := segments[0], segments[1]
		lenA := utf8.RuneCountInString(a.FullText)
		lenB := utf8.RuneCountInString(b.FullText)
		shorter, shorterLen, longerLen := a.Speaker, lenA, lenB
		if lenB < lenA {
			shorter, shorterLen, longerLen = b.Speaker, lenB, lenA
		}
		if float64(shorterLen) < float64(longerLen)*talkRatioThreshold {
			scores[shorter] += shorterTalkerBonus
		}
	}

	best := order[0]
	for _, speaker := range order[1:] {
		if scores[speaker] > scores[best] {
			best = speaker
		}
	}
	return best
}
