package usecase

import "fmt"

// SolvePromptTemplate は生成AIに送る固定の指示文です。%s に認識済みのLaTeXが入ります。
const SolvePromptTemplate = `Please provide a clear, step-by-step solution
for the following math problem.

Problem (in LaTeX):
%s`

// BuildPrompt はLaTeX数式を埋め込んだプロンプトを生成します。
func BuildPrompt(latex string) string {
	return fmt.Sprintf(SolvePromptTemplate, latex)
}
