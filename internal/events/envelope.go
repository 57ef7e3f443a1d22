package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// Type tags the payload carried by an Envelope.
type Type string

const (
	TypeOrderCreated Type = "order.created"
	TypeNotification Type = "order.notification"
	TypeActivity     Type = "order.activity"
)

// Version is the current envelope version written by this service.
const Version = 1

// ErrInvalidMessage marks a message that can never be processed: malformed JSON,
// an unknown type or a payload that violates its schema. Consumers drop such
// messages instead of requeueing them.
var ErrInvalidMessage = errors.New("invalid message")

// Envelope wraps every message on the broker.
type Envelope struct {
	ID            string          `json:"id"`
	Type          Type            `json:"type"`
	Version       int             `json:"version"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlationId"`
	Payload       json.RawMessage `json:"payload"`
}

var (
	envelopeValidator = mustSchema(envelopeSchema)
	payloadValidators = map[Type]*gojsonschema.Schema{
		TypeOrderCreated: mustSchema(orderCreatedSchema),
		TypeNotification: mustSchema(notificationSchema),
		TypeActivity:     mustSchema(activitySchema),
	}
)

// New wraps payload in an envelope with a fresh id. The correlation id is the order id.
func New(t Type, producer, correlationID string, occurredAt time.Time, payload any) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}

	return Envelope{
		ID:            uuid.NewString(),
		Type:          t,
		Version:       Version,
		OccurredAt:    occurredAt.UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       body,
	}, nil
}

// Marshal encodes the envelope after validating its payload, so nothing
// that a consumer would reject is ever published.
func (e Envelope) Marshal() ([]byte, error) {
	if err := validate(payloadValidatorFor(e.Type), e.Payload); err != nil {
		return nil, err
	}
	return json.Marshal(e)
}

// Parse decodes and validates a message body. Every failure wraps ErrInvalidMessage.
func Parse(body []byte) (Envelope, error) {
	if err := validate(envelopeValidator, body); err != nil {
		return Envelope{}, err
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if env.Version > Version {
		return Envelope{}, fmt.Errorf("%w: version %d is newer than %d", ErrInvalidMessage, env.Version, Version)
	}
	if err := validate(payloadValidatorFor(env.Type), env.Payload); err != nil {
		return Envelope{}, err
	}

	return env, nil
}

// Decode unmarshals the payload into dst.
func (e Envelope) Decode(dst any) error {
	if err := json.Unmarshal(e.Payload, dst); err != nil {
		return fmt.Errorf("%w: decode %s payload: %w", ErrInvalidMessage, e.Type, err)
	}
	return nil
}

func payloadValidatorFor(t Type) *gojsonschema.Schema {
	return payloadValidators[t]
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	if schema == nil {
		return fmt.Errorf("%w: unknown message type", ErrInvalidMessage)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidMessage)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for i, e := range result.Errors() {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidMessage, sb.String())
	}
	return nil
}

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("events: invalid schema: %v", err))
	}
	return schema
}
