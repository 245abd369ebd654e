package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetMemberProfile получает профиль участника
func (c *Client) GetMemberProfile(ctx context.Context, userID int64) (*MemberProfile, error) {
	url := fmt.Sprintf("%s/internal/users/%d/membership", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrProfileNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var profile MemberProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &profile, nil
}

// ResolveMemberType возвращает тип участника для тарификации.
// При недоступности UserService, отсутствии профиля или неактивном членстве
// применяется graceful degradation: пользователь тарифицируется как обычный участник.
func (c *Client) ResolveMemberType(ctx context.Context, userID int64) domain.MemberType {
	profile, err := c.GetMemberProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			c.log.Info("No member profile for user_id=%d, using %s rates", userID, domain.MemberTypeMember)
			return domain.MemberTypeMember
		}
		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return domain.MemberTypeMember
	}

	memberType := domain.MemberType(profile.MemberType)
	if !profile.Active || !memberType.IsValid() {
		c.log.Warn("Member profile for user_id=%d is not usable (type=%q, active=%t), using %s rates",
			userID, profile.MemberType, profile.Active, domain.MemberTypeMember)
		return domain.MemberTypeMember
	}

	return memberType
}
