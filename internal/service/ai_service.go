package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lingo_edu_backend/internal/config"
)

// AIService 词典查询和对话练习的外部模型代理。
// 只做编排转发，不做任何打分/释义逻辑。
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *AIService) complete(messages []AIChatMessage) (string, error) {
	reqBody := map[string]interface{}{
		"model":    s.config.Model,
		"messages": messages,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("AI响应解析失败: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI服务错误: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI服务未返回结果")
	}
	return parsed.Choices[0].Message.Content, nil
}

// LookupWord 词典查询：释义、音标、例句，Markdown 输出
func (s *AIService) LookupWord(word, language string) (string, error) {
	system := "你是一本专业的双语词典。给出单词的音标、词性、常用释义和两个例句，" +
		"用简洁的Markdown输出，不要输出与词条无关的内容。"
	prompt := fmt.Sprintf("查询%s单词：%s", language, word)

	return s.complete([]AIChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
}

// Chat 对话练习：带历史的多轮对话
func (s *AIService) Chat(prompt string, history []AIChatMessage) (string, error) {
	system := "你是一位耐心的语言学习陪练。用学习者正在学习的语言对话，" +
		"在回复末尾简短纠正对方的语法错误。只讨论语言学习相关话题。"

	messages := make([]AIChatMessage, 0, len(history)+2)
	messages = append(messages, AIChatMessage{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	return s.complete(messages)
}
