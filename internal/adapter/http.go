package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-bank-cards/internal/utils"
	"github.com/MKhiriev/go-bank-cards/models"
)

// no retries: balance changes are not idempotent
const defaultRetries = 0

// CardQuery holds the optional filters, sorting, paging and projection of
// card listings. Zero values are not sent.
type CardQuery struct {
	Page          int
	Size          int
	Status        models.CardStatus
	SortBy        string
	SortDirection string
	Fields        []string

	// OwnerID and RequestedStatus are honoured by the admin listing only.
	OwnerID         uuid.UUID
	RequestedStatus models.CardStatus
}

func (q CardQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.SortDirection != "" {
		v.Set("sortDirection", q.SortDirection)
	}
	if len(q.Fields) > 0 {
		v.Set("fields", strings.Join(q.Fields, ","))
	}
	if q.OwnerID != uuid.Nil {
		v.Set("ownerId", q.OwnerID.String())
	}
	if q.RequestedStatus != "" {
		v.Set("statusUpdateRequest", string(q.RequestedStatus))
	}
	return v
}

type httpBankCardsAPI struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string
}

// NewHTTPBankCardsAPI constructs a client of the server at address, which
// may omit the scheme ("localhost:8080"). Every attempt is bounded by timeout.
func NewHTTPBankCardsAPI(address string, timeout time.Duration) (BankCardsAPI, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := utils.NewHTTPClient(timeout, defaultRetries)
	client.SetBaseURL(baseURL)

	return &httpBankCardsAPI{client: client}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpBankCardsAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpBankCardsAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// request starts a call; authenticated calls carry the stored token.
func (h *httpBankCardsAPI) request(ctx context.Context) *resty.Request {
	r := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// do sends r and maps a non-2xx reply to an error.
func do(r *resty.Request, method, path, op string) error {
	resp, err := r.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	return mapHTTPError(resp)
}

func (h *httpBankCardsAPI) authenticate(ctx context.Context, path, op string, body any) error {
	var reply models.TokenResponse
	r := h.request(ctx).SetBody(body).SetResult(&reply)

	if err := do(r, resty.MethodPost, path, op); err != nil {
		return err
	}
	if reply.JWT == "" {
		return fmt.Errorf("%s: empty token in response", op)
	}

	h.SetToken(reply.JWT)
	return nil
}

func (h *httpBankCardsAPI) SignUp(ctx context.Context, request models.AuthRequest) error {
	return h.authenticate(ctx, "/api/auth/signup", "sign up", request)
}

func (h *httpBankCardsAPI) SignIn(ctx context.Context, request models.AuthRequest) error {
	return h.authenticate(ctx, "/api/auth/signin", "sign in", request)
}

func (h *httpBankCardsAPI) RequestAdmin(ctx context.Context, secret string) error {
	return h.authenticate(ctx, "/api/user/admin", "request admin", models.AdminRequest{Secret: secret})
}

func (h *httpBankCardsAPI) Me(ctx context.Context) (models.UserInfo, error) {
	var info models.UserInfo
	err := do(h.request(ctx).SetResult(&info), resty.MethodGet, "/api/user/me", "me")
	return info, err
}

func (h *httpBankCardsAPI) ListUsers(ctx context.Context, page models.Page) ([]models.UserInfo, error) {
	var users []models.UserInfo
	r := h.request(ctx).
		SetQueryParam("page", strconv.Itoa(page.Page)).
		SetResult(&users)
	if page.Size > 0 {
		r.SetQueryParam("size", strconv.Itoa(page.Size))
	}

	err := do(r, resty.MethodGet, "/admin/api/users", "list users")
	return users, err
}

func (h *httpBankCardsAPI) CreateCard(ctx context.Context, request models.CardCreateRequest) (models.CardView, error) {
	var card models.CardView
	r := h.request(ctx).SetBody(request).SetResult(&card)

	err := do(r, resty.MethodPost, "/admin/api/cards", "create card")
	return card, err
}

func (h *httpBankCardsAPI) ListCards(ctx context.Context, query CardQuery) ([]models.CardView, error) {
	var cards []models.CardView
	r := h.request(ctx).SetQueryParamsFromValues(query.values()).SetResult(&cards)

	err := do(r, resty.MethodGet, "/admin/api/cards", "list cards")
	return cards, err
}

func (h *httpBankCardsAPI) UpdateCardStatus(ctx context.Context, cardID uuid.UUID, request models.CardUpdateStatusRequest) error {
	r := h.request(ctx).SetBody(request)
	return do(r, resty.MethodPut, "/admin/api/cards/"+cardID.String()+"/status", "update card status")
}

func (h *httpBankCardsAPI) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return do(h.request(ctx), resty.MethodDelete, "/admin/api/cards/"+cardID.String(), "delete card")
}

func (h *httpBankCardsAPI) ListOwnCards(ctx context.Context, query CardQuery) ([]models.CardView, error) {
	var cards []models.CardView
	r := h.request(ctx).SetQueryParamsFromValues(query.values()).SetResult(&cards)

	err := do(r, resty.MethodGet, "/api/card", "list own cards")
	return cards, err
}

func (h *httpBankCardsAPI) Balance(ctx context.Context, cardID uuid.UUID) (models.BalanceView, error) {
	var balance models.BalanceView
	r := h.request(ctx).SetResult(&balance)

	err := do(r, resty.MethodGet, "/api/card/"+cardID.String()+"/balance", "balance")
	return balance, err
}

func (h *httpBankCardsAPI) ChangeBalance(ctx context.Context, cardID uuid.UUID, request models.CardBalanceRequest) (models.BalanceView, error) {
	var balance models.BalanceView
	r := h.request(ctx).SetBody(request).SetResult(&balance)

	err := do(r, resty.MethodPatch, "/api/card/"+cardID.String()+"/balance", "change balance")
	return balance, err
}

func (h *httpBankCardsAPI) Transfer(ctx context.Context, request models.CardTransferRequest) error {
	return do(h.request(ctx).SetBody(request), resty.MethodPost, "/api/card/transfer", "transfer")
}

func (h *httpBankCardsAPI) RequestCardStatus(ctx context.Context, cardID uuid.UUID, status models.CardStatus) error {
	r := h.request(ctx).SetBody(models.CardUpdateStatusRequest{Status: status})
	return do(r, resty.MethodPost, "/api/card/"+cardID.String()+"/status", "request card status")
}
