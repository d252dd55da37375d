package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lawlink/internal/client/models"
	"github.com/dmitrijs2005/lawlink/internal/common"
	"github.com/dmitrijs2005/lawlink/internal/logging"
)

// envelope is the response wrapper every backend endpoint uses. StatusCode
// is a string ("200" on success) per the backend contract.
type envelope struct {
	StatusCode string          `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

const envelopeOK = "200"

// HTTPClient implements Client over the backend's JSON REST API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do issues one request and decodes the envelope. kind classifies failures
// of this operation; a 401 always maps to KindAuthentication since it means
// the session is stale or revoked regardless of the endpoint.
func (c *HTTPClient) do(ctx context.Context, kind Kind, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return newError(kind, "", fmt.Errorf("encoding request: %w", err))
		}
		reader = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return newError(kind, "", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(kind, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(kind, "", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		return newError(KindAuthentication, env.Message, common.ErrorUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(kind, env.Message, fmt.Errorf("http status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return newError(kind, "", fmt.Errorf("decoding response: %w", decodeErr))
	}
	if env.StatusCode != envelopeOK {
		return newError(kind, env.Message, nil)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return newError(kind, "", fmt.Errorf("decoding response data: %w", err))
		}
	}
	return nil
}

// doRaw is for the few endpoints that return a bare JSON body instead of
// the envelope (chat history).
func (c *HTTPClient) doRaw(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return newError(KindRequest, "", err)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(KindRequest, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return newError(KindAuthentication, "", common.ErrorUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(KindRequest, "", fmt.Errorf("http status %d", resp.StatusCode))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(KindRequest, "", fmt.Errorf("decoding response: %w", err))
		}
	}
	return nil
}

// ---- auth ----

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthenticatedUser, error) {
	body := map[string]string{"email": email, "password": password}
	var user models.AuthenticatedUser
	if err := c.do(ctx, KindAuthentication, http.MethodPost, "/api/Auth/login", nil, body, &user); err != nil {
		return nil, err
	}
	c.SetToken(user.Token)
	return &user, nil
}

// registerResponse is the envelope data of both registration endpoints.
type registerResponse struct {
	Email string `json:"email"`
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var data registerResponse
	if err := c.do(ctx, KindRegistration, http.MethodPost, "/api/Auth/register", nil, body, &data); err != nil {
		return "", err
	}
	if data.Email == "" {
		return email, nil
	}
	return data.Email, nil
}

func (c *HTTPClient) RegisterLawyer(ctx context.Context, p LawyerRegistration) (string, error) {
	var data registerResponse
	if err := c.do(ctx, KindRegistration, http.MethodPost, "/api/Auth/lawyer/register", nil, p, &data); err != nil {
		return "", err
	}
	if data.Email == "" {
		return p.Email, nil
	}
	return data.Email, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.do(ctx, KindVerification, http.MethodPost, "/api/Auth/verify-otp", nil, body, nil)
}

func (c *HTTPClient) SendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, KindVerification, http.MethodPost, "/api/Auth/send-otp", nil, body, nil)
}

// ---- lawyers ----

func (c *HTTPClient) Lawyer(ctx context.Context, id int64) (*models.Lawyer, error) {
	var lawyer models.Lawyer
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Lawyer/%d", id), nil, nil, &lawyer); err != nil {
		return nil, err
	}
	return &lawyer, nil
}

// ---- enquiries ----

func (c *HTTPClient) CreateEnquiry(ctx context.Context, p EnquiryParams) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := c.do(ctx, KindRequest, http.MethodPost, "/api/Enquiry/create", nil, p, &enquiry); err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (c *HTTPClient) LawyerEnquiries(ctx context.Context, lawyerID int64) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Enquiry/lawyer/%d", lawyerID), nil, nil, &enquiries); err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (c *HTTPClient) UpdateEnquiryStatus(ctx context.Context, id int64, status models.EnquiryStatus) error {
	query := url.Values{"status": []string{string(status)}}
	return c.do(ctx, KindRequest, http.MethodPut, fmt.Sprintf("/api/Enquiry/%d/update-status", id), query, nil, nil)
}

// ---- consultations ----

func (c *HTTPClient) CreateConsultation(ctx context.Context, p ConsultationParams) (*models.Consultation, error) {
	var consultation models.Consultation
	if err := c.do(ctx, KindRequest, http.MethodPost, "/api/Consultation/create", nil, p, &consultation); err != nil {
		return nil, err
	}
	return &consultation, nil
}

// ---- ratings ----

func (c *HTTPClient) CreateRating(ctx context.Context, r models.Rating) error {
	return c.do(ctx, KindRequest, http.MethodPost, "/api/Rating", nil, r, nil)
}

type hasRatedResponse struct {
	HasRated bool `json:"hasRated"`
}

func (c *HTTPClient) HasRated(ctx context.Context, lawyerID int64) (bool, error) {
	var data hasRatedResponse
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Rating/check/%d", lawyerID), nil, nil, &data); err != nil {
		return false, err
	}
	return data.HasRated, nil
}

// ---- chat ----

func (c *HTTPClient) ChatHistory(ctx context.Context, peerID int64) ([]models.ChatMessage, error) {
	// Chat history is the one endpoint returning a bare array, no envelope.
	var history []models.ChatMessage
	if err := c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/api/Chat/history/%d", peerID), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *HTTPClient) SendChatMessage(ctx context.Context, receiverID int64, message string) error {
	body := map[string]any{"receiverId": receiverID, "message": message}
	return c.do(ctx, KindRequest, http.MethodPost, "/api/Chat/send", nil, body, nil)
}

// ---- notifications ----

func (c *HTTPClient) Notifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Notification/user/%d", userID), nil, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

func (c *HTTPClient) UnreadCount(ctx context.Context, userID int64) (int, error) {
	var data unreadCountResponse
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Notification/user/%d/unread-count", userID), nil, nil, &data); err != nil {
		return 0, err
	}
	return data.Count, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id int64) error {
	return c.do(ctx, KindRequest, http.MethodPatch, fmt.Sprintf("/api/Notification/%d/read", id), nil, nil, nil)
}

func (c *HTTPClient) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	return c.do(ctx, KindRequest, http.MethodPatch, fmt.Sprintf("/api/Notification/user/%d/read-all", userID), nil, nil, nil)
}

// ---- admin ----

func (c *HTTPClient) AdminLawyers(ctx context.Context) ([]models.Lawyer, error) {
	var lawyers []models.Lawyer
	if err := c.do(ctx, KindRequest, http.MethodGet, "/api/Admin/lawyers", nil, nil, &lawyers); err != nil {
		return nil, err
	}
	return lawyers, nil
}

func (c *HTTPClient) AdminClients(ctx context.Context) ([]models.AdminClient, error) {
	var clients []models.AdminClient
	if err := c.do(ctx, KindRequest, http.MethodGet, "/api/Admin/clients", nil, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *HTTPClient) UpdateLawyer(ctx context.Context, id int64, p LawyerUpdateParams) error {
	return c.do(ctx, KindRequest, http.MethodPut, fmt.Sprintf("/api/Admin/lawyers/%d", id), nil, p, nil)
}

func (c *HTTPClient) SetLawyerVerification(ctx context.Context, id int64, status models.VerificationStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, KindRequest, http.MethodPatch, fmt.Sprintf("/api/Admin/lawyers/%d/verification", id), nil, body, nil)
}

func (c *HTTPClient) SetClientStatus(ctx context.Context, id int64, active bool) error {
	body := map[string]bool{"isActive": active}
	return c.do(ctx, KindRequest, http.MethodPatch, fmt.Sprintf("/api/Admin/clients/%d/status", id), nil, body, nil)
}

func (c *HTTPClient) FlagClient(ctx context.Context, id int64, p FlagParams) error {
	return c.do(ctx, KindRequest, http.MethodPatch, fmt.Sprintf("/api/Admin/clients/%d/flag", id), nil, p, nil)
}

func (c *HTTPClient) AdminLawyerEnquiries(ctx context.Context, lawyerID int64) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Admin/lawyers/%d/enquiries", lawyerID), nil, nil, &enquiries); err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (c *HTTPClient) AdminLawyerConsultations(ctx context.Context, lawyerID int64) ([]models.Consultation, error) {
	var consultations []models.Consultation
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Admin/lawyers/%d/consultations", lawyerID), nil, nil, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

func (c *HTTPClient) AdminClientEnquiries(ctx context.Context, clientID int64) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Admin/clients/%d/enquiries", clientID), nil, nil, &enquiries); err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (c *HTTPClient) AdminClientConsultations(ctx context.Context, clientID int64) ([]models.Consultation, error) {
	var consultations []models.Consultation
	if err := c.do(ctx, KindRequest, http.MethodGet, fmt.Sprintf("/api/Admin/clients/%d/consultations", clientID), nil, nil, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

func (c *HTTPClient) ActivityLogs(ctx context.Context, actionType, search string) ([]models.ActivityLog, error) {
	query := url.Values{}
	if actionType != "" {
		query.Set("actionType", actionType)
	}
	if search != "" {
		query.Set("search", search)
	}
	var logs []models.ActivityLog
	if err := c.do(ctx, KindRequest, http.MethodGet, "/api/Admin/activity-logs", query, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

var _ Client = (*HTTPClient)(nil)
