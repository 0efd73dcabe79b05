package analysis

import (
	"fmt"
	"strings"

	"github.com/callsight-ai/callsight/internal/domain/entities"
)

const analysisSystemPrompt = "당신은 전화 상담 분석 전문가입니다. 반드시 요청된 JSON 형식으로만 응답하세요."

const defaultScriptContext = "업종별 기본 스크립트 사용"

// buildConversation renders utterances as role-labeled lines, one per
// utterance.
func buildConversation(utterances []entities.Utterance, customerSpeaker string) string {
	var b strings.Builder
	for _, u := range utterances {
		role := "상담사"
		if u.Speaker == customerSpeaker {
			role = "고객"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(u.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// buildUtteranceList renders utterances as bracketed role-tagged lines for
// the call-flow prompt.
func buildUtteranceList(utterances []entities.Utterance, customerSpeaker string) string {
	var b strings.Builder
	for _, u := range utterances {
		role := "상담사"
		if u.Speaker == customerSpeaker {
			role = "고객"
		}
		fmt.Fprintf(&b, "[%s] %s\n", role, u.Text)
	}
	return b.String()
}

func buildSummaryPrompt(conversation string) string {
	return fmt.Sprintf(`다음 전화 상담 대화를 분석하여 핵심을 요약하세요.

대화:
%s

아래 JSON 형식으로만 응답하세요:
{
  "overview": "통화 전체를 한두 문장으로 요약",
  "topics": ["논의된 주요 주제"],
  "outcome": "통화의 결과 또는 결론"
}`, conversation)
}

func buildSentimentPrompt(customerText, agentText string) string {
	return fmt.Sprintf(`다음 전화 상담에서 고객과 상담사의 감정을 분석하세요.

고객 발언:
%s

상담사 발언:
%s

감정 분류는 다음 중 하나를 사용하세요: 긍정, 부정, 중립, 흥분/기대, 걱정/우려, 화남, 만족
고객 상태는 다음 중 하나를 사용하세요: 관심 있음, 고민 중, 망설임, 만족, 불만족, 구매 준비됨, 관심 없음

아래 JSON 형식으로만 응답하세요:
{
  "customer": {
    "sentiment": "감정 분류",
    "score": 0.0,
    "tone": "말투에 대한 한 문장 설명",
    "engagement_level": "높음|보통|낮음",
    "key_emotions": ["주요 감정 키워드"]
  },
  "agent": {
    "sentiment": "감정 분류",
    "score": 0.0,
    "tone": "말투에 대한 한 문장 설명",
    "engagement_level": "높음|보통|낮음",
    "key_emotions": ["주요 감정 키워드"]
  },
  "customer_state": "고객 상태"
}`, customerText, agentText)
}

func buildNeedsPrompt(customerText, conversation string) string {
	return fmt.Sprintf(`다음 전화 상담에서 고객의 니즈를 분석하세요.

고객 발언:
%s

전체 대화:
%s

아래 JSON 형식으로만 응답하세요:
{
  "primary_reason": "고객이 전화한 핵심 이유",
  "needs": ["파악된 고객 니즈"],
  "pain_points": ["고객이 언급한 불편 사항"],
  "urgency": "높음|보통|낮음"
}`, customerText, conversation)
}

func buildFlowPrompt(utteranceList string) string {
	return fmt.Sprintf(`다음 전화 상담의 대화 흐름을 재구성하세요.

발화 목록:
%s

아래 JSON 형식으로만 응답하세요:
{
  "turns": [
    {
      "turn_number": 1,
      "speaker": "고객|상담사",
      "message": "발언 요지",
      "reaction": "상대방의 반응",
      "key_point": "이 턴의 핵심"
    }
  ],
  "journey": ["고객 여정의 단계"],
  "critical_moments": ["통화의 결정적 순간"]
}`, utteranceList)
}

func buildRepliesPrompt(conversation string, customerState entities.CustomerState, need entities.CustomerNeed, scriptContext string) string {
	painPoints := "없음"
	if len(need.PainPoints) > 0 {
		painPoints = strings.Join(need.PainPoints, ", ")
	}
	if scriptContext == "" {
		scriptContext = defaultScriptContext
	}

	return fmt.Sprintf(`다음 전화 상담을 바탕으로 상담사가 보낼 후속 답변을 추천하세요.

전체 대화:
%s

분석 결과:
- 고객 상태: %s
- 핵심 니즈: %s
- 불편 사항: %s
- 긴급도: %s

참고 스크립트:
%s

아래 JSON 형식으로만 응답하세요:
{
  "next_action": "상담사가 취해야 할 다음 행동",
  "recommended_replies": ["고객에게 보낼 추천 답변 3개"]
}`, conversation, customerState, need.PrimaryReason, painPoints, need.Urgency, scriptContext)
}
