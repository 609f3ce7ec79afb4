package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/ali-aqib/blog/internal/domain"
)

// 定义任务类型常量
const (
	TypeContactEmail = "contact:email" // 联系表单邮件发送任务
)

// ContactEmailPayload 定义了联系邮件任务的数据结构
type ContactEmailPayload struct {
	Ticket  string                `json:"ticket"` // 对外展示的回执，与任务 ID 相同
	Message domain.ContactMessage `json:"message"`
}

// NewContactEmailTask 创建一个新的联系邮件任务
func NewContactEmailTask(ticket string, msg domain.ContactMessage) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(ContactEmailPayload{Ticket: ticket, Message: msg})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact email payload: %w", err)
	}
	return asynq.NewTask(TypeContactEmail, payloadBytes), nil
}

// ParseContactEmailPayload 解析任务负载
func ParseContactEmailPayload(t *asynq.Task) (ContactEmailPayload, error) {
	var payload ContactEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal contact email payload: %w", err)
	}
	return payload, nil
}
