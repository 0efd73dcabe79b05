package analysis

import (
	"testing"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

func utts(pairs ...[2]string) []entities.Utterance {
	out := make([]entities.Utterance, 0, len(pairs))
	for i, p := range pairs {
		out = append(out, entities.Utterance{Position: i, Speaker: p[0], Text: p[1]})
	}
	return out
}

func detect(utterances []entities.Utterance) string {
	return DetectCustomerSpeaker(utterances, entities.BuildSpeakerSegments(utterances))
}

func TestDetectCustomerSpeakerEmptyInput(t *testing.T) {
	if got := detect(nil); got != "A" {
		t.Errorf("empty input = %s, want sentinel A", got)
	}
}

func TestDetectCustomerSpeakerSingleSpeaker(t *testing.T) {
	u := utts([2]string{"B", "여보세요"}, [2]string{"B", "네 맞습니다"})
	if got := detect(u); got != "B" {
		t.Errorf("single speaker = %s, want B", got)
	}
}

// The agent opens with a formal greeting, the customer opens with an inquiry
// and asks the questions. The customer must win even though the agent talks
// more.
func TestDetectCustomerSpeakerInquiryVsGreeting(t *testing.T) {
	u := utts(
		[2]string{"A", "안녕하세요 콜사이트 상담센터 김민수입니다. 무엇을 도와드리겠습니다"},
		[2]string{"B", "네, 인터넷 요금제 문의 때문에 전화했어요"},
		[2]string{"A", "네 고객님, 현재 사용 중인 요금제를 확인해 드리겠습니다. 잠시만 기다려 주시면 바로 안내해 드리고 자세한 내용을 설명해 드리겠습니다"},
		[2]string{"B", "요금이 얼마 정도 되나요?"},
		[2]string{"A", "월 3만 5천원부터 시작하는 요금제가 있고 결합 할인도 가능합니다. 가족 결합 시 추가 할인이 적용되어 더 저렴하게 이용하실 수 있습니다"},
		[2]string{"B", "할인은 어떻게 받나요?"},
	)
	if got := detect(u); got != "B" {
		t.Errorf("customer = %s, want B", got)
	}
}

func TestDetectCustomerSpeakerOpeningBonusAppliedOnce(t *testing.T) {
	// First utterance matches four opening patterns; the bonus must not
	// stack, so five question keywords from the other speaker outscore it.
	u := utts(
		[2]string{"A", "상담 신청 가입 문의"},
		[2]string{"B", "왜 어떻게 뭐 얼마 어느"},
	)
	// A: +5 opening (once). B: +10 questions. B wins only if the bonus is
	// applied once.
	if got := detect(u); got != "B" {
		t.Errorf("customer = %s, want B (opening bonus must apply once)", got)
	}
}

func TestDetectCustomerSpeakerTalkRatioBonus(t *testing.T) {
	long := "상품에 대해 자세히 말씀드리자면 이 상품은 다양한 혜택과 보장을 제공하며 특히 장기 연장 시 추가 혜택이 제공되고 가족 단위 연장도 가능하여 많은 분들이 선택하고 계시죠"
	u := utts(
		[2]string{"A", long},
		[2]string{"B", "네 알겠네요"},
		[2]string{"A", long},
		[2]string{"B", "좋네요"},
	)
	// No keyword signals either way; only the talk-ratio bonus separates them.
	if got := detect(u); got != "B" {
		t.Errorf("customer = %s, want shorter talker B", got)
	}
}

// With no distinguishing signal the first-seen speaker wins, deterministically.
func TestDetectCustomerSpeakerTieBreaksToFirstSeen(t *testing.T) {
	u := utts(
		[2]string{"B", "여보세요"},
		[2]string{"A", "여보세요"},
	)
	for i := 0; i < 20; i++ {
		if got := detect(u); got != "B" {
			t.Fatalf("run %d: tie = %s, want first-seen B", i, got)
		}
	}
}

func TestBuildSpeakerSegmentsOrderAndConcat(t *testing.T) {
	u := utts(
		[2]string{"B", "첫 번째"},
		[2]string{"A", "두 번째"},
		[2]string{"B", "세 번째"},
	)
	segments := entities.BuildSpeakerSegments(u)
	if len(segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(segments))
	}
	if segments[0].Speaker != "B" || segments[1].Speaker != "A" {
		t.Errorf("segment order = %s, %s; want first-seen order B, A", segments[0].Speaker, segments[1].Speaker)
	}
	if segments[0].FullText != "첫 번째 세 번째" {
		t.Errorf("concatenated text = %q", segments[0].FullText)
	}
}
