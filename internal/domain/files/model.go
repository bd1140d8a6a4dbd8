package files

// Status — стадия загрузки файла. Запись создаётся до прихода документа
// и становится uploaded, когда Telegram выдал file_id.
type Status string

const (
	StatusUnfinished Status = "unfinished"
	StatusUploaded   Status = "uploaded"
)

// File хранит только ссылку file_id из Telegram — самих байтов в БД нет.
type File struct {
	ID       int64
	TgFileID string
	Name     string
	Category string
	Status   Status
}

// CategoryPics — картинки бота; загружаются фотографиями, а не документами.
const CategoryPics = "pics"

// Categories — фиксированный набор разделов библиотеки.
var Categories = []string{"booklets", "books", "formats", "extras", "schedule", CategoryPics}

func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
