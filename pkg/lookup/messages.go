package lookup

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a user-facing message
type Key string

const (
	MsgNetwork         Key = "errors.network"
	MsgTimeout         Key = "errors.timeout"
	MsgInvalidColor    Key = "errors.invalidColor"
	MsgInvalidFormat   Key = "errors.invalidFormat"
	MsgInvalidResponse Key = "errors.invalidResponse"
	MsgInvalidAddress  Key = "errors.invalidAddress"
	MsgAddressNotFound Key = "errors.addressNotFound"
	MsgRemoteError     Key = "errors.remoteError"
	MsgUnknown         Key = "errors.unknown"
)

var english = map[Key]string{
	MsgNetwork:         "Network error. Check your connection and try again.",
	MsgTimeout:         "The request timed out. Please try again.",
	MsgInvalidColor:    "The color service rejected this color.",
	MsgInvalidFormat:   "Invalid color format. Use six hex digits, e.g. #059669.",
	MsgInvalidResponse: "The service returned an unexpected response.",
	MsgInvalidAddress:  "Enter at least 3 characters of an address.",
	MsgAddressNotFound: "Address not found.",
	MsgRemoteError:     "Service error (status %d). Please try again later.",
	MsgUnknown:         "An unexpected error occurred.",
}

var messages = mustCatalog(english)

func newCatalog(texts map[Key]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	var errs []error
	for key, text := range texts {
		if err := b.SetString(language.English, string(key), text); err != nil {
			errs = append(errs, fmt.Errorf("message %q: %w", key, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

func mustCatalog(texts map[Key]string) *catalog.Builder {
	b, err := newCatalog(texts)
	if err != nil {
		panic(fmt.Sprintf("lookup: building message catalog: %v", err))
	}
	return b
}

// Localizer renders message keys for one language. Languages without a
// catalogue entry fall back to English.
type Localizer struct {
	printer *message.Printer
}

// NewLocalizer builds a Localizer for a BCP 47 tag such as "en" or "pl"
func NewLocalizer(lang string) *Localizer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	supported := messages.Languages()
	_, idx, _ := language.NewMatcher(supported).Match(tag)
	return &Localizer{
		printer: message.NewPrinter(supported[idx], message.Catalog(messages)),
	}
}

// Text renders key with optional format arguments
func (l *Localizer) Text(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}

// TransportMessage picks the message for a transport or status failure.
// invalid is used for INVALID_INPUT so each service can phrase a 4xx in its own terms.
func (l *Localizer) TransportMessage(kind ErrorKind, status int, invalid Key) string {
	switch kind {
	case ErrNetwork:
		return l.Text(MsgNetwork)
	case ErrTimeout:
		return l.Text(MsgTimeout)
	case ErrInvalidInput:
		return l.Text(invalid)
	case ErrRemote:
		return l.Text(MsgRemoteError, status)
	default:
		return l.Text(MsgUnknown)
	}
}
