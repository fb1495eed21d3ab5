package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"hermes/pkg/errors"
)

// GmailClient covers the Gmail endpoints the assistant's agents use.
// All paths address the special user id `me` (the authenticated user);
// callers never supply a user id.
type GmailClient struct {
	*Client
}

// NewGmailClient builds a Gmail client on the shared transport.
func NewGmailClient(c *Client) *GmailClient {
	return &GmailClient{Client: c}
}

// MessageRef identifies a message within its thread.
type MessageRef struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

// MessageList is one page of GET /gmail/v1/users/me/messages.
type MessageList struct {
	Messages           []MessageRef `json:"messages"`
	NextPageToken      string       `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int          `json:"resultSizeEstimate"`
}

// MessageHeader is a single RFC 822 header of a message part.
type MessageHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MessagePartBody holds base64url-encoded part content.
type MessagePartBody struct {
	Size int    `json:"size"`
	Data string `json:"data,omitempty"`
}

// MessagePart is a node of a message's MIME tree.
type MessagePart struct {
	PartID   string          `json:"partId,omitempty"`
	MimeType string          `json:"mimeType,omitempty"`
	Filename string          `json:"filename,omitempty"`
	Headers  []MessageHeader `json:"headers,omitempty"`
	Body     MessagePartBody `json:"body"`
	Parts    []MessagePart   `json:"parts,omitempty"`
}

// Message is a Gmail message as returned by messages.get/send.
type Message struct {
	ID           string       `json:"id"`
	ThreadID     string       `json:"threadId"`
	LabelIDs     []string     `json:"labelIds,omitempty"`
	Snippet      string       `json:"snippet,omitempty"`
	Payload      *MessagePart `json:"payload,omitempty"`
	InternalDate string       `json:"internalDate,omitempty"`
}

// Header returns the value of the named top-level header, if present.
func (m *Message) Header(name string) string {
	if m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// PlainText decodes the first text/plain body found in the MIME tree.
func (m *Message) PlainText() (string, error) {
	if m.Payload == nil {
		return "", nil
	}
	part := findPart(m.Payload, "text/plain")
	if part == nil || part.Body.Data == "" {
		return "", nil
	}
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(part.Body.Data, "="))
	if err != nil {
		return "", errors.Wrapf(errors.ErrDecode, "decode message body: %v", err)
	}
	return string(decoded), nil
}

func findPart(p *MessagePart, mimeType string) *MessagePart {
	if p.MimeType == mimeType {
		return p
	}
	for i := range p.Parts {
		if found := findPart(&p.Parts[i], mimeType); found != nil {
			return found
		}
	}
	return nil
}

// Profile is the record returned by GET /gmail/v1/users/me/profile.
type Profile struct {
	EmailAddress  string `json:"emailAddress"`
	MessagesTotal int    `json:"messagesTotal"`
	ThreadsTotal  int    `json:"threadsTotal"`
	HistoryID     string `json:"historyId"`
}

// ListMessagesRequest narrows a message listing. Query uses Gmail search
// syntax (e.g. "from:alice is:unread").
type ListMessagesRequest struct {
	Query      string
	LabelIDs   []string
	MaxResults int
	PageToken  string
}

// ListMessages fetches one page of message ids matching the request.
func (c *GmailClient) ListMessages(ctx context.Context, bearerToken string, req ListMessagesRequest) (MessageList, error) {
	if bearerToken == "" {
		return MessageList{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}

	params := url.Values{}
	if req.Query != "" {
		params.Set("q", req.Query)
	}
	for _, label := range req.LabelIDs {
		params.Add("labelIds", label)
	}
	if req.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(req.MaxResults))
	}
	if req.PageToken != "" {
		params.Set("pageToken", req.PageToken)
	}

	var list MessageList
	if err := c.get(ctx, "gmail", "messages_list", "/gmail/v1/users/me/messages", params, bearerToken, &list); err != nil {
		return MessageList{}, err
	}
	return list, nil
}

// GetMessage fetches a single message by id. Format is one of
// minimal|full|raw|metadata; empty means the API default (full).
func (c *GmailClient) GetMessage(ctx context.Context, bearerToken, id, format string) (Message, error) {
	if bearerToken == "" {
		return Message{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}
	if id == "" {
		return Message{}, errors.Wrap(errors.ErrInvalidArgument, "message id is required")
	}

	params := url.Values{}
	if format != "" {
		params.Set("format", format)
	}

	var msg Message
	if err := c.get(ctx, "gmail", "messages_get", "/gmail/v1/users/me/messages/"+url.PathEscape(id), params, bearerToken, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// SendMessage submits a base64url-encoded RFC 822 message via
// POST /gmail/v1/users/me/messages/send.
func (c *GmailClient) SendMessage(ctx context.Context, bearerToken, raw string) (Message, error) {
	if bearerToken == "" {
		return Message{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}
	if raw == "" {
		return Message{}, errors.Wrap(errors.ErrInvalidArgument, "raw message is required")
	}

	payload := map[string]string{"raw": raw}
	var msg Message
	if err := c.post(ctx, "gmail", "messages_send", "/gmail/v1/users/me/messages/send", nil, bearerToken, payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// GetProfile fetches the authenticated user's mailbox profile.
func (c *GmailClient) GetProfile(ctx context.Context, bearerToken string) (Profile, error) {
	if bearerToken == "" {
		return Profile{}, errors.Wrap(errors.ErrInvalidArgument, "bearer token is required")
	}

	var profile Profile
	if err := c.get(ctx, "gmail", "get_profile", "/gmail/v1/users/me/profile", nil, bearerToken, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// BuildRawMessage assembles a plain-text RFC 822 message and encodes it
// base64url for use as the `raw` parameter of messages.send.
func BuildRawMessage(from, to, subject, body string) (string, error) {
	if to == "" {
		return "", errors.Wrap(errors.ErrInvalidArgument, "recipient is required")
	}

	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String())), nil
}
