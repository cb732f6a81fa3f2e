package validator

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- 测试必填字段检查 ---

func TestMissingFields_AllPresent(t *testing.T) {
	missing := MissingFields(Fields{
		Name:    "Oak Elementary",
		Address: "1 Oak St",
		City:    "Springfield",
		State:   "IL",
		Contact: "1234567890",
		EmailID: "office@oak.edu",
	})
	assert.Empty(t, missing)
}

func TestMissingFields_SomeMissing(t *testing.T) {
	missing := MissingFields(Fields{
		Name:    "Oak Elementary",
		Contact: "1234567890",
	})
	assert.Equal(t, []string{"address", "city", "state", "email_id"}, missing)
}

func TestMissingFields_WhitespaceOnly(t *testing.T) {
	// 纯空白视为缺失
	missing := MissingFields(Fields{
		Name:    "   ",
		Address: "1 Oak St",
		City:    "Springfield",
		State:   "IL",
		Contact: "1234567890",
		EmailID: "office@oak.edu",
	})
	assert.Equal(t, []string{"name"}, missing)
}

// --- 测试邮箱校验 ---

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"office@oak.edu", true},
		{"a@b.co", true},
		{"first.last@sub.example.com", true},
		{"no-at-sign", false},
		{"no-domain@", false},
		{"@no-local.com", false},
		{"spaces in@local.com", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), "email: %q", tt.email)
	}
}

// --- 测试联系电话校验 ---

func TestIsValidContact(t *testing.T) {
	tests := []struct {
		contact string
		want    bool
	}{
		{"1234567890", true},
		{"123456789012345", true},
		{"123", false},
		{"123456789", false},
		{"12345abcde", false},
		{"+1234567890", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidContact(tt.contact), "contact: %q", tt.contact)
	}
}

// --- 测试图片内容检测 ---

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIsImage_PNG(t *testing.T) {
	reader := bytes.NewReader(pngBytes(t))

	ok, err := IsImage(reader)
	assert.NoError(t, err)
	assert.True(t, ok)

	// 检测后流必须回到起始位置
	pos, err := reader.Seek(0, io.SeekCurrent)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), pos)
}

func TestIsImage_Text(t *testing.T) {
	reader := bytes.NewReader([]byte("this is definitely not an image"))

	ok, err := IsImage(reader)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestIsImage_PDF(t *testing.T) {
	reader := bytes.NewReader([]byte("%PDF-1.4 fake document content"))

	ok, err := IsImage(reader)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestIsImage_Empty(t *testing.T) {
	reader := bytes.NewReader(nil)

	ok, err := IsImage(reader)
	assert.NoError(t, err)
	assert.False(t, ok)
}
