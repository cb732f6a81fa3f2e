package validator

import (
	"io"
	"net/http"
	"regexp"
	"strings"
)

var (
	// emailRegex local-part@domain.tld
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// contactRegex 纯数字且至少 10 位
	contactRegex = regexp.MustCompile(`^[0-9]{10,}$`)
)

// allowedImageMimeTypes Allowed image types
var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
}

// Fields 待校验的学校字段
type Fields struct {
	Name    string
	Address string
	City    string
	State   string
	Contact string
	EmailID string
}

// MissingFields 返回为空的必填字段名，全部填写时返回 nil
func MissingFields(f Fields) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("name", f.Name)
	check("address", f.Address)
	check("city", f.City)
	check("state", f.State)
	check("contact", f.Contact)
	check("email_id", f.EmailID)
	return missing
}

// IsValidEmail 校验邮箱格式
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidContact 校验联系电话格式
func IsValidContact(contact string) bool {
	return contactRegex.MatchString(contact)
}

// IsImage Verify if the file content is an allowed image type.
func IsImage(file io.ReadSeeker) (bool, error) {
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return false, err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return false, err
	}

	// 检测 MIME 类型
	mimeType := http.DetectContentType(buffer[:n])

	return allowedImageMimeTypes[mimeType], nil
}
