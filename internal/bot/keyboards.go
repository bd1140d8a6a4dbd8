package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// chooseRoleKeyboard — выбор роли для нового инвайта. Superadmin может
// выписывать только админов, owner — и суперадминов тоже.
func chooseRoleKeyboard(withSuperadmin bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("Админ", "invite:role:admin"),
	}
	if withSuperadmin {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("Суперадмин", "invite:role:superadmin"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func constItemKeyboard(id int64) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📨 Отправить", fmt.Sprintf("const:send:%d", id)),
		tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("const:del:%d", id)),
	)
}

func tempItemKeyboard(id int64) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📨 Отправить", fmt.Sprintf("temp:send:%d", id)),
		tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("temp:del:%d", id)),
	)
}
