package legalrights

import (
	"fmt"
	"strings"
)

// SystemPrompt is the system instruction for answer generation.
const SystemPrompt = `你是一位专业的劳动法律师助手，专注于离职员工的劳动法维权咨询。

你的职责：
1. 基于提供的法律文档和案例，为用户提供准确的法律建议
2. 解释相关的法律条文和规定
3. 指导用户如何维护自己的合法权益
4. 计算经济补偿金（N、N+1、2N等）

回答要求：
1. 准确：引用具体的法律条文和规定
2. 专业：使用正确的法律术语
3. 实用：提供可操作的建议
4. 谨慎：说明法律风险和注意事项

重要提示：
- 如果信息不足，主动询问必要的细节
- 计算补偿金时，明确列出计算步骤
- 建议用户在重要决策前咨询当地律师
- 始终在回答末尾添加免责声明`

var typeInstructions = map[QuestionType]string{
	QuestionCalculation: `这是一个补偿金计算问题。请：
1. 明确列出计算公式
2. 逐步展示计算过程
3. 给出最终金额
4. 说明可能的调整因素`,
	QuestionProcedure: `这是一个维权流程问题。请：
1. 按步骤列出具体流程
2. 说明每步需要的材料
3. 提示注意事项和时限`,
	QuestionLegalBasis: `这是一个法律依据问题。请：
1. 引用具体的法律条文
2. 解释法条的含义
3. 说明适用条件`,
}

// Turn is one question and answer of a conversation.
type Turn struct {
	Question string
	Answer   string
}

// historyAnswerLimit caps each previous answer quoted in a prompt, in characters.
const historyAnswerLimit = 200

// BuildPrompt builds the user prompt for a question from the retrieved
// chunks, the question type and recent conversation turns.
func BuildPrompt(question string, results []*SearchResult, typ QuestionType, history []Turn) string {
	var sb strings.Builder

	if len(history) > 0 {
		sb.WriteString("# 对话历史\n")
		for i, turn := range history {
			answer := []rune(turn.Answer)
			if len(answer) > historyAnswerLimit {
				answer = append(answer[:historyAnswerLimit], []rune("...")...)
			}
			fmt.Fprintf(&sb, "【问题%d】%s\n【回答%d】%s\n\n", i+1, turn.Question, i+1, string(answer))
		}
	}

	fmt.Fprintf(&sb, "# 用户问题\n%s\n\n", question)

	sb.WriteString("# 相关法律文档\n")
	if len(results) == 0 {
		sb.WriteString("（未检索到相关文档）\n")
	}
	for i, r := range results {
		section := ""
		if r.Chunk.SectionTitle != "" {
			section = "【" + r.Chunk.SectionTitle + "】"
		}
		fmt.Fprintf(&sb, "## 参考文档 %d %s\n%s\n\n", i+1, section, r.Chunk.Content)
	}

	if instruction, ok := typeInstructions[typ]; ok {
		fmt.Fprintf(&sb, "# 回答指导\n%s\n\n", instruction)
	}

	sb.WriteString("请基于以上参考文档，为用户提供专业、准确、实用的解答。")
	sb.WriteString("如果文档中信息不完整，请说明哪些信息缺失。")
	sb.WriteString("在回答末尾添加：" + Disclaimer)

	return sb.String()
}

// EnsureDisclaimer appends the disclaimer to text unless it already has one.
func EnsureDisclaimer(text string) string {
	if strings.Contains(text, "免责声明") {
		return text
	}
	return strings.TrimRight(text, "\n") + "\n\n" + Disclaimer
}
