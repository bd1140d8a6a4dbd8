package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/community-bot/internal/domain/invites"
	"github.com/Spok95/community-bot/internal/domain/users"
	"github.com/Spok95/community-bot/internal/infra/metrics"
)

func roleRU(role users.Role) string {
	switch role {
	case users.RoleAdmin:
		return "админ"
	case users.RoleSuperadmin:
		return "суперадмин"
	case users.RoleOwner:
		return "владелец"
	default:
		return "участник"
	}
}

// handleChooseRole — callback с выбором роли для нового кода.
func (b *Bot) handleChooseRole(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User) {
	if !u.Role.Meets(users.RoleSuperadmin) {
		b.answerCallback(cb, "Доступ запрещён")
		return
	}

	var role users.Role
	switch strings.TrimPrefix(cb.Data, "invite:role:") {
	case "admin":
		role = users.RoleAdmin
	case "superadmin":
		// суперадминов выписывает только владелец
		if u.Role != users.RoleOwner {
			b.answerCallback(cb, "Доступ запрещён")
			return
		}
		role = users.RoleSuperadmin
	default:
		b.answerCallback(cb, "")
		return
	}

	code, err := b.invites.Generate(ctx, identityFrom(cb.From), role)
	if err != nil {
		b.log.Error("generate invite failed", "err", err, "user_id", u.ID)
		b.answerCallback(cb, "Не получилось, попробуйте ещё раз")
		return
	}
	metrics.InvitesIssuedTotal.WithLabelValues(string(role)).Inc()

	b.reply(cb.Message.Chat.ID, fmt.Sprintf(
		"Код на роль «%s»:\n%s\n\nКод одноразовый: получатель просто отправляет его боту.", roleRU(role), code))
	b.answerCallback(cb, "")
}

// handleInviteCode — входящее сообщение с префиксом кода: пробуем погасить.
func (b *Bot) handleInviteCode(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	id := identityFrom(msg.From)

	role, err := b.invites.Use(ctx, strings.TrimSpace(msg.Text), id)
	if err == nil {
		metrics.RedemptionsTotal.WithLabelValues("granted").Inc()
		b.reply(chatID, fmt.Sprintf("Готово! Теперь ты %s.", roleRU(role)))
		return
	}

	switch {
	case errors.Is(err, invites.ErrTooManyAttempts):
		metrics.RedemptionsTotal.WithLabelValues("too_many_attempts").Inc()
		b.reply(chatID, blockedText(b.invCfg.BlockTime))

	case errors.Is(err, invites.ErrNotFound):
		metrics.RedemptionsTotal.WithLabelValues("not_found").Inc()
		left := b.invites.Remaining(id.ID)
		b.reply(chatID, fmt.Sprintf("Неверный код. Осталось попыток: %d", left))
		if left == 0 {
			b.reply(chatID, blockedText(b.invCfg.BlockTime))
		}

	case errors.Is(err, invites.ErrAlreadyUsed):
		metrics.RedemptionsTotal.WithLabelValues("already_used").Inc()
		b.reply(chatID, "Этот код уже погашен.")

	case errors.Is(err, invites.ErrAlreadySuperadmin):
		metrics.RedemptionsTotal.WithLabelValues("already_elevated").Inc()
		b.reply(chatID, "У тебя и так максимальная роль, код не нужен.")

	case errors.Is(err, invites.ErrAlreadyAdmin):
		metrics.RedemptionsTotal.WithLabelValues("already_elevated").Inc()
		b.reply(chatID, "Ты уже админ. Этот код даёт ту же роль.")

	default:
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		b.log.Error("redeem invite failed", "err", err, "user_id", id.ID)
		b.reply(chatID, "Что-то пошло не так, попробуйте позже.")
	}
}

func blockedText(d time.Duration) string {
	return fmt.Sprintf("Слишком много попыток. Ввод кодов заблокирован на %d мин.", int(d.Minutes()))
}

func (b *Bot) handleListInvites(ctx context.Context, chatID int64, userID int64) {
	list, err := b.invRepo.ListByIssuer(ctx, userID)
	if err != nil {
		b.log.Error("list invites failed", "err", err, "user_id", userID)
		b.reply(chatID, "Не получилось достать список кодов.")
		return
	}
	if len(list) == 0 {
		b.reply(chatID, "Ты ещё не выписывал кодов.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Твои коды:\n")
	for _, inv := range list {
		status := "не использован"
		if inv.WasUsed {
			status = "погашен: " + inv.UsedByName
		}
		fmt.Fprintf(&sb, "`%s` (%s) — %s\n", inv.Code, roleRU(inv.Role), status)
	}
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ParseMode = tgbotapi.ModeMarkdown
	b.send(m)
}

// handleExportAdmins — xlsx со всеми повышенными пользователями.
func (b *Bot) handleExportAdmins(ctx context.Context, chatID int64) {
	list, err := b.users.ListElevated(ctx)
	if err != nil {
		b.log.Error("list elevated failed", "err", err)
		b.reply(chatID, "Не получилось собрать выгрузку.")
		return
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"
	_ = f.SetCellValue(sheet, "A1", "ID")
	_ = f.SetCellValue(sheet, "B1", "Имя")
	_ = f.SetCellValue(sheet, "C1", "Username")
	_ = f.SetCellValue(sheet, "D1", "Роль")

	for i, u := range list {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), u.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), strings.TrimSpace(u.FirstName+" "+u.LastName))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), u.Username)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), roleRU(u.Role))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("write xlsx failed", "err", err)
		b.reply(chatID, "Не получилось собрать файл.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "admins.xlsx",
		Bytes: buf.Bytes(),
	})
	b.send(doc)
}
