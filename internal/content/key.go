package content

import (
	"fmt"

	"github.com/google/uuid"
)

// NewKey 生成存储主键。UUIDv7 按时间递增，按主键排序即为插入顺序。
func NewKey() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return id.String(), nil
}
