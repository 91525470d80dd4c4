package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/swifttrack/internal/constants"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTrackingNumber 生成运单号：前缀 + 当前毫秒时间戳末 8 位 + 3 位随机 base36 大写字符。
// 仅尽力保证唯一，冲突由仓储层的唯一约束兜底上报。
func GenerateTrackingNumber() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}

	suffix := make([]byte, 3)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			// crypto/rand 不可用时退化为时间导出值
			suffix[i] = base36Alphabet[time.Now().UnixNano()%int64(len(base36Alphabet))]
			continue
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}

	return fmt.Sprintf("%s%s%s", constants.TrackingNumberPrefix, millis, suffix)
}
