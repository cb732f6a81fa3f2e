package generator

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AssetName 为上传的图片生成唯一存储标识符，
// 形如 school-1700000000000-a1b2c3d4.jpg，扩展名取自原始文件名。
func AssetName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !validExt(ext) {
		ext = ""
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("school-%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}

// validExt 只保留简单的字母数字扩展名，其余场景不带扩展名存储
func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 {
		return false
	}
	for _, r := range ext[1:] {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
