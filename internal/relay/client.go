package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"veil/internal/domain"
)

// HTTPClient talks to a relay server.
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the relay at base. A nil httpClient falls back
// to http.DefaultClient.
func NewHTTP(base string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{Base: base, HTTP: httpClient}
}

func (c *HTTPClient) PublishIdentity(ctx context.Context, rec domain.IdentityRecord) error {
	return c.post(ctx, "/identities", rec, nil)
}

func (c *HTTPClient) FetchIdentity(ctx context.Context, alias domain.Alias) (domain.IdentityRecord, error) {
	var out domain.IdentityRecord
	err := c.getJSON(ctx, "/identities/alias/"+url.PathEscape(alias.String()), &out)
	return out, err
}

func (c *HTTPClient) FetchIdentityByID(ctx context.Context, id domain.IdentityID) (domain.IdentityRecord, error) {
	var out domain.IdentityRecord
	err := c.getJSON(ctx, "/identities/"+url.PathEscape(id.String()), &out)
	return out, err
}

func (c *HTTPClient) CreateHandshake(ctx context.Context, rec domain.HandshakeRecord) (domain.HandshakeRecord, error) {
	req := struct {
		InitiatorID domain.IdentityID `json:"initiator_id"`
		TargetAlias domain.Alias      `json:"target_alias"`
		TTLSeconds  int64             `json:"ttl_seconds,omitempty"`
	}{
		InitiatorID: rec.InitiatorID,
		TargetAlias: rec.TargetAlias,
	}
	if !rec.ExpiresAt.IsZero() {
		req.TTLSeconds = int64(time.Until(rec.ExpiresAt) / time.Second)
	}
	var out domain.HandshakeRecord
	err := c.post(ctx, "/handshakes", req, &out)
	return out, err
}

func (c *HTTPClient) GetHandshake(ctx context.Context, id domain.HandshakeID) (domain.HandshakeRecord, error) {
	var out domain.HandshakeRecord
	err := c.getJSON(ctx, "/handshakes/"+url.PathEscape(id.String()), &out)
	return out, err
}

func (c *HTTPClient) IncomingHandshakes(ctx context.Context, target domain.Alias) ([]domain.HandshakeRecord, error) {
	var out []domain.HandshakeRecord
	err := c.getJSON(ctx, "/handshakes?target="+url.QueryEscape(target.String()), &out)
	return out, err
}

func (c *HTTPClient) AcceptHandshake(
	ctx context.Context,
	id domain.HandshakeID,
	caller domain.IdentityID,
	material domain.SessionKeyMaterial,
) (domain.ContactRecord, error) {
	req := struct {
		CallerID           domain.IdentityID         `json:"caller_id"`
		SessionKeyMaterial domain.SessionKeyMaterial `json:"session_key_material"`
	}{CallerID: caller, SessionKeyMaterial: material}

	var out domain.ContactRecord
	err := c.post(ctx, "/handshakes/"+url.PathEscape(id.String())+"/accept", req, &out)
	return out, err
}

func (c *HTTPClient) RejectHandshake(ctx context.Context, id domain.HandshakeID, caller domain.IdentityID) error {
	req := struct {
		CallerID domain.IdentityID `json:"caller_id"`
	}{CallerID: caller}
	return c.post(ctx, "/handshakes/"+url.PathEscape(id.String())+"/reject", req, nil)
}

func (c *HTTPClient) Contacts(ctx context.Context, owner domain.IdentityID) ([]domain.ContactRecord, error) {
	var out []domain.ContactRecord
	err := c.getJSON(ctx, "/contacts?owner="+url.QueryEscape(owner.String()), &out)
	return out, err
}

func (c *HTTPClient) SendMessage(ctx context.Context, rec domain.MessageRecord) (domain.MessageRecord, error) {
	var out domain.MessageRecord
	err := c.post(ctx, "/messages", rec, &out)
	return out, err
}

func (c *HTTPClient) FetchMessages(ctx context.Context, recipient domain.IdentityID, limit int) ([]domain.MessageRecord, error) {
	path := "/messages?recipient=" + url.QueryEscape(recipient.String())
	if limit > 0 {
		path += "&limit=" + strconv.Itoa(limit)
	}
	var out []domain.MessageRecord
	err := c.getJSON(ctx, path, &out)
	return out, err
}

func (c *HTTPClient) AckMessages(ctx context.Context, recipient domain.IdentityID, count int) error {
	req := struct {
		RecipientID domain.IdentityID `json:"recipient_id"`
		Count       int               `json:"count"`
	}{RecipientID: recipient, Count: count}
	return c.post(ctx, "/messages/ack", req, nil)
}

// ---------- transport helpers ----------

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// decodeError translates the relay's stable error codes back into the domain
// taxonomy. Unknown bodies become retryable storage failures.
func decodeError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch body.Error {
	case "validation":
		return domain.ErrValidation
	case "alias_not_found":
		return domain.ErrAliasNotFound
	case "not_found":
		return domain.ErrHandshakeNotFound
	case "not_pending":
		return domain.ErrHandshakeNotPending
	case "expired":
		return domain.ErrHandshakeExpired
	case "unauthorized":
		return domain.ErrUnauthorized
	case "peer_not_ready":
		return domain.ErrPeerNotReady
	default:
		return fmt.Errorf("%w: relay returned %s", domain.ErrStorageUnavailable, resp.Status)
	}
}

// Compile-time assertion that HTTPClient implements domain.RelayClient.
var _ domain.RelayClient = (*HTTPClient)(nil)
