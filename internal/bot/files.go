package bot

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/community-bot/internal/domain/files"
	"github.com/Spok95/community-bot/internal/domain/users"
)

var fileCategoryTitles = map[string]string{
	"booklets": "Буклеты",
	"books":    "Книги",
	"formats":  "Форматы встреч",
	"extras":   "Доп. материалы",
	"schedule": "Расписание",
	"pics":     "Картинки бота",
}

func fileCategoryRU(slug string) string {
	return fileCategoryTitles[slug]
}

// handleFileCategories — публичный вход в библиотеку: /files.
func (b *Bot) handleFileCategories(chatID int64) {
	m := tgbotapi.NewMessage(chatID, "Материалы сообщества:")
	m.ReplyMarkup = fileCategoriesKeyboard("file:cat:", false)
	b.send(m)
}

// startAddFile — выбор раздела перед загрузкой, только superadmin.
func (b *Bot) startAddFile(chatID int64) {
	m := tgbotapi.NewMessage(chatID, "В какой раздел загружаем?")
	m.ReplyMarkup = fileCategoriesKeyboard("file:add:", true)
	b.send(m)
}

func (b *Bot) handleFileCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User) {
	action, arg, ok := splitFileCallback(cb.Data)
	if !ok {
		b.answerCallback(cb, "")
		return
	}
	chatID := cb.Message.Chat.ID

	switch action {
	case "cat":
		if !files.ValidCategory(arg) {
			b.answerCallback(cb, "")
			return
		}
		b.listFilesInCategory(ctx, cb, arg, u)

	case "add":
		if !u.Role.Meets(users.RoleSuperadmin) {
			b.answerCallback(cb, "Доступ запрещён")
			return
		}
		if !files.ValidCategory(arg) {
			b.answerCallback(cb, "")
			return
		}
		b.startUpload(ctx, cb, arg, u)

	case "send":
		_, id, idOK := parseItemCallback(cb.Data, "file")
		if !idOK {
			b.answerCallback(cb, "")
			return
		}
		f, err := b.files.GetByID(ctx, id)
		if err != nil || f == nil || f.Status != files.StatusUploaded {
			b.answerCallback(cb, "Файл не найден")
			return
		}
		if f.Category == files.CategoryPics {
			b.send(tgbotapi.NewPhoto(chatID, tgbotapi.FileID(f.TgFileID)))
		} else {
			b.send(tgbotapi.NewDocument(chatID, tgbotapi.FileID(f.TgFileID)))
		}
		b.answerCallback(cb, "")

	case "del":
		if !u.Role.Meets(users.RoleSuperadmin) {
			b.answerCallback(cb, "Доступ запрещён")
			return
		}
		_, id, idOK := parseItemCallback(cb.Data, "file")
		if !idOK {
			b.answerCallback(cb, "")
			return
		}
		if err := b.files.Delete(ctx, id); err != nil {
			b.log.Error("delete file failed", "err", err, "id", id)
			b.answerCallback(cb, "Не получилось удалить")
			return
		}
		b.answerCallback(cb, "Удалено")

	default:
		b.answerCallback(cb, "")
	}
}

func (b *Bot) listFilesInCategory(ctx context.Context, cb *tgbotapi.CallbackQuery, category string, u *users.User) {
	chatID := cb.Message.Chat.ID
	list, err := b.files.ListUploaded(ctx, category)
	if err != nil {
		b.log.Error("list files failed", "err", err, "category", category)
		b.answerCallback(cb, "Не получилось достать список")
		return
	}
	if len(list) == 0 {
		b.reply(chatID, "В разделе пока пусто.")
		b.answerCallback(cb, "")
		return
	}

	canDelete := u.Role.Meets(users.RoleSuperadmin)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list))
	for _, f := range list {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📄 "+f.Name, fmt.Sprintf("file:send:%d", f.ID)),
		}
		if canDelete {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🗑", fmt.Sprintf("file:del:%d", f.ID)))
		}
		rows = append(rows, row)
	}
	out := tgbotapi.NewMessage(chatID, fileCategoryRU(category)+":")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(out)
	b.answerCallback(cb, "")
}

// startUpload создаёт незавершённую запись и ждёт документа (или фото для
// картинок) — id записи едет в состоянии диалога.
func (b *Bot) startUpload(ctx context.Context, cb *tgbotapi.CallbackQuery, category string, u *users.User) {
	chatID := cb.Message.Chat.ID
	id, err := b.files.Add(ctx, category)
	if err != nil {
		b.log.Error("add file failed", "err", err, "category", category)
		b.answerCallback(cb, "Не получилось, попробуйте ещё раз")
		return
	}

	stateName := users.StateFileUpload
	prompt := "Пришлите файл документом:"
	if category == files.CategoryPics {
		stateName = users.StatePicUpload
		prompt = "Пришлите картинку:"
	}
	if err := b.resolver.UpdateState(ctx, u.ID, users.State{Name: stateName, EntityID: id}); err != nil {
		b.log.Error("set state failed", "err", err, "user_id", u.ID)
		b.answerCallback(cb, "Не получилось, попробуйте ещё раз")
		return
	}
	b.reply(chatID, prompt)
	b.answerCallback(cb, "")
}

// fileDocumentUploaded — пришёл документ для незавершённой записи.
func (b *Bot) fileDocumentUploaded(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	if msg.Document == nil {
		b.reply(msg.Chat.ID, "Жду файл документом. Или /cancel.")
		return
	}
	if err := b.files.FinishUpload(ctx, u.State.EntityID, msg.Document.FileID, msg.Document.FileName); err != nil {
		b.log.Error("finish upload failed", "err", err, "id", u.State.EntityID)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	_ = b.resolver.UpdateState(ctx, u.ID, users.DefaultState())
	b.reply(msg.Chat.ID, "Файл сохранён. Список — /files")
}

// filePictureUploaded — пришло фото; имя генерируем, у фото его нет.
func (b *Bot) filePictureUploaded(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	if len(msg.Photo) == 0 {
		b.reply(msg.Chat.ID, "Жду картинку. Или /cancel.")
		return
	}
	tgID := msg.Photo[len(msg.Photo)-1].FileID

	name, err := randomPicName(8)
	if err != nil {
		b.log.Error("pic name generation failed", "err", err)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	if err := b.files.FinishUpload(ctx, u.State.EntityID, tgID, name); err != nil {
		b.log.Error("finish upload failed", "err", err, "id", u.State.EntityID)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	_ = b.resolver.UpdateState(ctx, u.ID, users.DefaultState())
	b.reply(msg.Chat.ID, "Картинка сохранена.")
}

// randomGreetingPic — случайная загруженная картинка для приветствия,
// пустая строка, если картинок нет.
func (b *Bot) randomGreetingPic(ctx context.Context) string {
	pics, err := b.files.ListUploaded(ctx, files.CategoryPics)
	if err != nil {
		b.log.Error("list pics failed", "err", err)
		return ""
	}
	if len(pics) == 0 {
		return ""
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(pics))))
	if err != nil {
		return pics[0].TgFileID
	}
	return pics[n.Int64()].TgFileID
}

// fileCategoriesKeyboard — разделы библиотеки; картинки бота видят только
// загружающие, в публичном списке их нет.
func fileCategoriesKeyboard(prefix string, withPics bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(files.Categories))
	for _, slug := range files.Categories {
		if slug == files.CategoryPics && !withPics {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fileCategoryRU(slug), prefix+slug),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

const picNameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPicName(length int) (string, error) {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(picNameAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = picNameAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// splitFileCallback разбирает "file:<action>:<arg>", arg — слаг или id.
func splitFileCallback(data string) (action, arg string, ok bool) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 || parts[0] != "file" {
		return "", "", false
	}
	return parts[1], parts[2], true
}
