package discord

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/giveawayhub/backend/config"
	"github.com/giveawayhub/backend/pkg/api"
	"github.com/puzpuzpuz/xsync"
)

const apiURL = "https://discord.com/api"
const userAgent = "DiscordBot (https://giveawayhub.com, 1.0)"

const getMemberResource = "get_member"

type Endpoint struct {
	BotToken string
	BotID    string

	apiGenerator      api.Generator
	rateLimitResource *xsync.MapOf[string, *xsync.MapOf[string, time.Time]]
}

func New(cfg config.DiscordConfigs) *Endpoint {
	return &Endpoint{
		BotToken:          cfg.BotToken,
		BotID:             cfg.BotID,
		apiGenerator:      api.NewGenerator(),
		rateLimitResource: xsync.NewMapOf[*xsync.MapOf[string, time.Time]](),
	}
}

func (e *Endpoint) GetMember(ctx context.Context, guildID, userID string) (Member, error) {
	if err := e.checkLimitingResource(getMemberResource, guildID); err != nil {
		return Member{}, err
	}

	resp, err := e.apiGenerator.New(apiURL, "/guilds/%s/members/%s", guildID, userID).
		Header("User-Agent", userAgent).
		GET(ctx, api.OAuth2("Bot", e.BotToken))
	if err != nil {
		return Member{}, err
	}

	if err := e.checkTooManyRequest(resp, getMemberResource, guildID); err != nil {
		return Member{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Member{}, errors.New("invalid response")
	}

	// If response has the field of code, an error is returned.
	if _, err := body.GetInt("code"); err == nil {
		return Member{}, errors.New("member not found")
	}

	roles, err := body.GetStringArray("roles")
	if err != nil {
		return Member{}, err
	}

	return Member{ID: userID, Roles: roles}, nil
}

func (e *Endpoint) HasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	member, err := e.GetMember(ctx, guildID, userID)
	if err != nil {
		return false, err
	}

	for _, role := range member.Roles {
		if role == roleID {
			return true, nil
		}
	}

	return false, nil
}

func (e *Endpoint) checkLimitingResource(resource, identifier string) error {
	if limit, ok := e.rateLimitResource.Load(resource); ok {
		if resetAt, ok := limit.Load(identifier); ok {
			if resetAt.After(time.Now()) {
				return wrapRateLimit(resetAt.Unix())
			}

			// If the rate limit is reset, delete the limit for this resource.
			limit.Delete(identifier)
		}
	}

	return nil
}

func (e *Endpoint) checkTooManyRequest(resp *api.Response, resource, identifier string) error {
	if resp.Code == http.StatusTooManyRequests {
		resetAt, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Reset"))
		if err != nil {
			return err
		}

		resourceLimiter, _ := e.rateLimitResource.LoadOrStore(resource, xsync.NewMapOf[time.Time]())
		resourceLimiter.Store(identifier, time.Unix(int64(resetAt), 0))
		return wrapRateLimit(int64(resetAt))
	}

	return nil
}
