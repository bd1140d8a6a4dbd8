package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/community-bot/internal/domain/users"
)

/*** Постоянные сообщения ***/

func (b *Bot) startConstFlow(ctx context.Context, chatID int64, userID int64) {
	if err := b.resolver.UpdateState(ctx, userID, users.State{Name: users.StateConstAwaitName}); err != nil {
		b.log.Error("set state failed", "err", err, "user_id", userID)
		return
	}
	b.reply(chatID, "Название сообщения?")
}

func (b *Bot) constNameEntered(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		b.reply(msg.Chat.ID, "Нужно название. Или /cancel.")
		return
	}

	id, err := b.content.AddConst(ctx, name)
	if err != nil {
		b.log.Error("add const failed", "err", err)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	// дальше диалог привязан к созданной записи
	if err := b.resolver.UpdateState(ctx, u.ID,
		users.State{Name: users.StateConstAwaitText, EntityID: id}); err != nil {
		b.log.Error("set state failed", "err", err, "user_id", u.ID)
		return
	}
	b.reply(msg.Chat.ID, "Теперь текст сообщения:")
}

func (b *Bot) constTextEntered(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	if err := b.content.SetConstText(ctx, u.State.EntityID, msg.Text); err != nil {
		b.log.Error("set const text failed", "err", err, "id", u.State.EntityID)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	_ = b.resolver.UpdateState(ctx, u.ID, users.DefaultState())
	b.reply(msg.Chat.ID, "Сохранил. Список — /consts")
}

func (b *Bot) handleListConst(ctx context.Context, chatID int64) {
	list, err := b.content.ListConst(ctx)
	if err != nil {
		b.log.Error("list const failed", "err", err)
		b.reply(chatID, "Не получилось достать список.")
		return
	}
	if len(list) == 0 {
		b.reply(chatID, "Постоянных сообщений пока нет. Создать — /newconst")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 2*len(list))
	for _, m := range list {
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📄 "+m.Name, fmt.Sprintf("const:send:%d", m.ID))),
			constItemKeyboard(m.ID),
		)
	}
	out := tgbotapi.NewMessage(chatID, "Постоянные сообщения:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(out)
}

func (b *Bot) handleConstCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User) {
	if !u.Role.Meets(users.RoleAdmin) {
		b.answerCallback(cb, "Доступ запрещён")
		return
	}
	action, id, ok := parseItemCallback(cb.Data, "const")
	if !ok {
		b.answerCallback(cb, "")
		return
	}

	switch action {
	case "send":
		m, err := b.content.GetConst(ctx, id)
		if err != nil || m == nil {
			b.answerCallback(cb, "Сообщение не найдено")
			return
		}
		b.reply(cb.Message.Chat.ID, m.Text)
		b.answerCallback(cb, "")
	case "del":
		if err := b.content.DeleteConst(ctx, id); err != nil {
			b.log.Error("delete const failed", "err", err, "id", id)
			b.answerCallback(cb, "Не получилось удалить")
			return
		}
		b.answerCallback(cb, "Удалено")
	}
}

/*** Временные сообщения ***/

func (b *Bot) startTempFlow(ctx context.Context, chatID int64, userID int64) {
	if err := b.resolver.UpdateState(ctx, userID, users.State{Name: users.StateTempAwaitName}); err != nil {
		b.log.Error("set state failed", "err", err, "user_id", userID)
		return
	}
	b.reply(chatID, "Название сообщения?")
}

func (b *Bot) tempNameEntered(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	name := strings.TrimSpace(msg.Text)
	if name == "" {
		b.reply(msg.Chat.ID, "Нужно название. Или /cancel.")
		return
	}

	id, err := b.content.AddTemp(ctx, name)
	if err != nil {
		b.log.Error("add temp failed", "err", err)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	if err := b.resolver.UpdateState(ctx, u.ID,
		users.State{Name: users.StateTempAwaitDate, EntityID: id}); err != nil {
		b.log.Error("set state failed", "err", err, "user_id", u.ID)
		return
	}
	b.reply(msg.Chat.ID, "До какой даты хранить? Формат: ДД.ММ.ГГГГ")
}

func (b *Bot) tempDateEntered(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	day, err := time.Parse("02.01.2006", strings.TrimSpace(msg.Text))
	if err != nil {
		b.reply(msg.Chat.ID, "Не понял дату. Формат: ДД.ММ.ГГГГ, например 31.12.2026")
		return
	}
	// храним до конца указанного дня
	expires := day.Add(24 * time.Hour)

	if err := b.content.SetTempExpiry(ctx, u.State.EntityID, expires); err != nil {
		b.log.Error("set temp expiry failed", "err", err, "id", u.State.EntityID)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	if err := b.resolver.UpdateState(ctx, u.ID,
		users.State{Name: users.StateTempAwaitText, EntityID: u.State.EntityID}); err != nil {
		b.log.Error("set state failed", "err", err, "user_id", u.ID)
		return
	}
	b.reply(msg.Chat.ID, "Теперь текст сообщения:")
}

func (b *Bot) tempTextEntered(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	if err := b.content.SetTempText(ctx, u.State.EntityID, msg.Text); err != nil {
		b.log.Error("set temp text failed", "err", err, "id", u.State.EntityID)
		b.reply(msg.Chat.ID, "Не получилось сохранить, попробуйте ещё раз.")
		return
	}
	_ = b.resolver.UpdateState(ctx, u.ID, users.DefaultState())
	b.reply(msg.Chat.ID, "Сохранил. Список — /temps")
}

func (b *Bot) handleListTemp(ctx context.Context, chatID int64) {
	list, err := b.content.ListTemp(ctx)
	if err != nil {
		b.log.Error("list temp failed", "err", err)
		b.reply(chatID, "Не получилось достать список.")
		return
	}
	if len(list) == 0 {
		b.reply(chatID, "Временных сообщений пока нет. Создать — /newtemp")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 2*len(list))
	for _, m := range list {
		title := fmt.Sprintf("📄 %s (до %s)", m.Name, m.ExpiresAt.Format("02.01.2006"))
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(title, fmt.Sprintf("temp:send:%d", m.ID))),
			tempItemKeyboard(m.ID),
		)
	}
	out := tgbotapi.NewMessage(chatID, "Временные сообщения:")
	out.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(out)
}

func (b *Bot) handleTempCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User) {
	if !u.Role.Meets(users.RoleAdmin) {
		b.answerCallback(cb, "Доступ запрещён")
		return
	}
	action, id, ok := parseItemCallback(cb.Data, "temp")
	if !ok {
		b.answerCallback(cb, "")
		return
	}

	switch action {
	case "send":
		m, err := b.content.GetTemp(ctx, id)
		if err != nil || m == nil {
			b.answerCallback(cb, "Сообщение не найдено")
			return
		}
		b.reply(cb.Message.Chat.ID, m.Text)
		b.answerCallback(cb, "")
	case "del":
		if err := b.content.DeleteTemp(ctx, id); err != nil {
			b.log.Error("delete temp failed", "err", err, "id", id)
			b.answerCallback(cb, "Не получилось удалить")
			return
		}
		b.answerCallback(cb, "Удалено")
	}
}

// parseItemCallback разбирает "<prefix>:<action>:<id>".
func parseItemCallback(data, prefix string) (action string, id int64, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != prefix {
		return "", 0, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return parts[1], id, true
}
