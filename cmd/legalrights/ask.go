package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/natmusissunny/legalrights"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	if !deps.Retriever.Ready() {
		fmt.Fprintln(deps.Stderr, "warning: index not built, answering without references. Run 'legalrights build' first.")
	}
	if c.TopK > 0 {
		deps.Agent.TopK = c.TopK
	}

	answer, err := deps.Agent.Ask(deps.Ctx, c.Question)
	if err != nil {
		return err
	}

	printAnswer(deps.Stdout, answer, c.Verbose)
	return nil
}

func printAnswer(w io.Writer, answer *legalrights.Answer, references bool) {
	fmt.Fprintln(w, answer.Text)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "置信度: %.2f\n", answer.Confidence)

	if len(answer.Sources) > 0 {
		fmt.Fprintln(w, "参考来源:")
		for _, s := range answer.Sources {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}

	if references && len(answer.Results) > 0 {
		fmt.Fprintln(w)
		for i, r := range answer.Results {
			printResult(w, i+1, r.Chunk, fmt.Sprintf(" (%.2f)", r.Score))
		}
	}
}

// Chat commands, in English and Chinese.
var (
	chatExit    = []string{"exit", "quit", "退出"}
	chatClear   = []string{"clear", "清空"}
	chatHistory = []string{"history", "历史"}
)

// Run executes the chat command: one question per line until EOF or an
// exit command. Failed questions are reported and the loop continues.
func (c *ChatCmd) Run(deps *Dependencies) error {
	if !deps.Retriever.Ready() {
		fmt.Fprintln(deps.Stderr, "warning: index not built, answering without references. Run 'legalrights build' first.")
	}

	fmt.Fprintln(deps.Stdout, "输入问题开始咨询，输入 exit 退出，clear 清空对话，history 查看对话摘要。")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case isCommand(line, chatExit):
			fmt.Fprintln(deps.Stdout, "再见！")
			return nil
		case isCommand(line, chatClear):
			deps.Agent.Conversation.Reset()
			fmt.Fprintln(deps.Stdout, "对话已清空。")
			continue
		case isCommand(line, chatHistory):
			fmt.Fprintln(deps.Stdout, deps.Agent.Conversation.Summary())
			continue
		}

		answer, err := deps.Agent.Ask(deps.Ctx, line)
		if err != nil {
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
			fmt.Fprintf(deps.Stderr, "error: %s\n", legalrights.ErrorMessage(err))
			continue
		}
		printAnswer(deps.Stdout, answer, false)
		fmt.Fprintln(deps.Stdout)
	}

	fmt.Fprintln(deps.Stdout)
	return scanner.Err()
}

func isCommand(line string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(line, n) {
			return true
		}
	}
	return false
}
