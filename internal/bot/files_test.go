package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/community-bot/internal/domain/files"
	"github.com/Spok95/community-bot/internal/domain/users"
)

func TestFileCategoryRU(t *testing.T) {
	// у каждого раздела есть русское название
	for _, slug := range files.Categories {
		assert.NotEmpty(t, fileCategoryRU(slug), slug)
	}
	assert.Empty(t, fileCategoryRU("no_such_category"))
}

func TestSplitFileCallback(t *testing.T) {
	cases := []struct {
		data   string
		action string
		arg    string
		ok     bool
	}{
		{"file:cat:books", "cat", "books", true},
		{"file:add:pics", "add", "pics", true},
		{"file:send:12", "send", "12", true},
		{"file:del:3", "del", "3", true},
		{"file:cat", "", "", false},
		{"const:send:3", "", "", false},
	}
	for _, tc := range cases {
		action, arg, ok := splitFileCallback(tc.data)
		assert.Equal(t, tc.ok, ok, tc.data)
		assert.Equal(t, tc.action, action, tc.data)
		assert.Equal(t, tc.arg, arg, tc.data)
	}
}

func TestFileCategoriesKeyboardHidesPics(t *testing.T) {
	public := fileCategoriesKeyboard("file:cat:", false)
	for _, row := range public.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)
			assert.NotEqual(t, "file:cat:pics", *btn.CallbackData)
		}
	}
	assert.Len(t, public.InlineKeyboard, len(files.Categories)-1)

	upload := fileCategoriesKeyboard("file:add:", true)
	assert.Len(t, upload.InlineKeyboard, len(files.Categories))
}

func TestRandomPicName(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		name, err := randomPicName(8)
		require.NoError(t, err)
		assert.Len(t, name, 8)
		for _, r := range name {
			assert.Contains(t, picNameAlphabet, string(r))
		}
		seen[name] = true
	}
	// коллизии на 50 именах из 62^8 — признак сломанного генератора
	assert.Greater(t, len(seen), 45)
}

func TestUploadStateRoundTrip(t *testing.T) {
	// состояние загрузки хранит id незавершённой записи
	cases := map[string]users.State{
		"file_upload:7": {Name: users.StateFileUpload, EntityID: 7},
		"pic_upload:12": {Name: users.StatePicUpload, EntityID: 12},
	}
	for raw, want := range cases {
		st, err := users.ParseState(raw)
		require.NoError(t, err)
		assert.Equal(t, want, st)
		assert.Equal(t, raw, st.String())
	}
}
