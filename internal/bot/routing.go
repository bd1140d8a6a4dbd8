package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/community-bot/internal/domain/users"
	"github.com/Spok95/community-bot/internal/infra/metrics"
)

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Пользователя заводим при первом же контакте, роль default.
	u, err := b.resolver.Ensure(ctx, identityFrom(msg.From))
	if err != nil {
		b.log.Error("resolve user failed", "err", err, "user_id", msg.From.ID)
		b.reply(msg.Chat.ID, "Что-то пошло не так, попробуйте ещё раз.")
		return
	}

	switch {
	case msg.IsCommand():
		metrics.CommandsTotal.WithLabelValues(msg.Command()).Inc()
		b.handleCommand(ctx, msg, u)
	case strings.HasPrefix(msg.Text, b.invCfg.CodePrefix):
		b.handleInviteCode(ctx, msg)
	default:
		b.handleStateMessage(ctx, msg, u)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.greet(ctx, chatID, u)

	case "help":
		b.reply(chatID, helpText(u.Role))

	case "files":
		b.handleFileCategories(chatID)

	case "cancel":
		if err := b.resolver.UpdateState(ctx, u.ID, users.DefaultState()); err != nil {
			b.log.Error("reset state failed", "err", err, "user_id", u.ID)
		}
		b.reply(chatID, "Ок, отменил.")

	case "addadmin":
		if !u.Role.Meets(users.RoleSuperadmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		m := tgbotapi.NewMessage(chatID, "Кого добавляем?")
		m.ReplyMarkup = chooseRoleKeyboard(u.Role == users.RoleOwner)
		b.send(m)

	case "invites":
		if !u.Role.Meets(users.RoleSuperadmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.handleListInvites(ctx, chatID, u.ID)

	case "export":
		if u.Role != users.RoleOwner {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.handleExportAdmins(ctx, chatID)

	case "addfile":
		if !u.Role.Meets(users.RoleSuperadmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.startAddFile(chatID)

	case "newconst":
		if !u.Role.Meets(users.RoleAdmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.startConstFlow(ctx, chatID, u.ID)

	case "consts":
		if !u.Role.Meets(users.RoleAdmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.handleListConst(ctx, chatID)

	case "newtemp":
		if !u.Role.Meets(users.RoleAdmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.startTempFlow(ctx, chatID, u.ID)

	case "temps":
		if !u.Role.Meets(users.RoleAdmin) {
			b.reply(chatID, "Доступ запрещён.")
			return
		}
		b.handleListTemp(ctx, chatID)

	default:
		b.reply(chatID, "Не знаю такую команду. Наберите /help")
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	switch u.State.Name {
	case users.StateConstAwaitName:
		b.constNameEntered(ctx, msg, u)
	case users.StateConstAwaitText:
		b.constTextEntered(ctx, msg, u)
	case users.StateTempAwaitName:
		b.tempNameEntered(ctx, msg, u)
	case users.StateTempAwaitDate:
		b.tempDateEntered(ctx, msg, u)
	case users.StateTempAwaitText:
		b.tempTextEntered(ctx, msg, u)
	case users.StateFileUpload:
		b.fileDocumentUploaded(ctx, msg, u)
	case users.StatePicUpload:
		b.filePictureUploaded(ctx, msg, u)
	default:
		// обычное сообщение вне диалога — молчим
	}
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}

	u, err := b.resolver.Ensure(ctx, identityFrom(cb.From))
	if err != nil {
		b.log.Error("resolve user failed", "err", err, "user_id", cb.From.ID)
		b.answerCallback(cb, "Ошибка, попробуйте ещё раз")
		return
	}

	data := cb.Data
	switch {
	case strings.HasPrefix(data, "invite:role:"):
		b.handleChooseRole(ctx, cb, u)
	case strings.HasPrefix(data, "const:"):
		b.handleConstCallback(ctx, cb, u)
	case strings.HasPrefix(data, "temp:"):
		b.handleTempCallback(ctx, cb, u)
	case strings.HasPrefix(data, "file:"):
		b.handleFileCallback(ctx, cb, u)
	default:
		b.answerCallback(cb, "")
	}
}

func (b *Bot) greet(ctx context.Context, chatID int64, u *users.User) {
	if pic := b.randomGreetingPic(ctx); pic != "" {
		b.send(tgbotapi.NewPhoto(chatID, tgbotapi.FileID(pic)))
	}
	switch {
	case u.Role == users.RoleOwner:
		b.reply(chatID, "Привет! Ты владелец бота, тебе доступно всё: /help")
	case u.Role.Meets(users.RoleAdmin):
		b.reply(chatID, "Привет, админ! Команды управления — в /help")
	default:
		b.reply(chatID, "Привет! Это бот сообщества. Если у тебя есть код приглашения — просто отправь его сообщением.")
	}
}

func helpText(role users.Role) string {
	lines := []string{
		"/start — начать работу",
		"/help — помощь",
		"/files — материалы сообщества",
	}
	if role.Meets(users.RoleAdmin) {
		lines = append(lines,
			"/newconst — сохранить постоянное сообщение",
			"/consts — список постоянных сообщений",
			"/newtemp — сохранить временное сообщение",
			"/temps — список временных сообщений",
			"/cancel — отменить текущий диалог",
		)
	}
	if role.Meets(users.RoleSuperadmin) {
		lines = append(lines,
			"/addadmin — выписать код приглашения",
			"/invites — мои выписанные коды",
			"/addfile — загрузить файл в библиотеку",
		)
	}
	if role == users.RoleOwner {
		lines = append(lines, "/export — выгрузка админов в Excel")
	}
	return strings.Join(lines, "\n")
}
