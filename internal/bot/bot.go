package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/community-bot/internal/config"
	"github.com/Spok95/community-bot/internal/domain/content"
	"github.com/Spok95/community-bot/internal/domain/files"
	"github.com/Spok95/community-bot/internal/domain/invites"
	"github.com/Spok95/community-bot/internal/domain/users"
	"github.com/Spok95/community-bot/internal/identity"
	"github.com/Spok95/community-bot/internal/infra/metrics"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	log      *slog.Logger
	resolver *identity.Resolver
	invites  *invites.Manager
	invRepo  *invites.Repo // только чтение: списки выписанных кодов
	content  *content.Repo
	files    *files.Repo
	users    *users.Repo
	invCfg   config.Invites
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, resolver *identity.Resolver,
	inviteMgr *invites.Manager, invRepo *invites.Repo, contentRepo *content.Repo,
	filesRepo *files.Repo, usersRepo *users.Repo, invCfg config.Invites) *Bot {

	return &Bot{
		api:      api,
		log:      log,
		resolver: resolver,
		invites:  inviteMgr,
		invRepo:  invRepo,
		content:  contentRepo,
		files:    filesRepo,
		users:    usersRepo,
		invCfg:   invCfg,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			start := time.Now()
			switch {
			case upd.Message != nil:
				metrics.UpdatesTotal.WithLabelValues("message").Inc()
				b.onMessage(ctx, upd.Message)
				metrics.HandlerDuration.WithLabelValues("message").Observe(time.Since(start).Seconds())
			case upd.CallbackQuery != nil:
				metrics.UpdatesTotal.WithLabelValues("callback").Inc()
				b.onCallback(ctx, upd.CallbackQuery)
				metrics.HandlerDuration.WithLabelValues("callback").Observe(time.Since(start).Seconds())
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("callback answer failed", "err", err)
	}
}

func identityFrom(from *tgbotapi.User) users.Identity {
	return users.Identity{
		ID:        from.ID,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		Username:  from.UserName,
	}
}
