package services

import (
	"context"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/Pawel-dev5/character-map-app/pkg/character"
	"github.com/Pawel-dev5/character-map-app/pkg/lookup"
)

const DefaultColorAPIURL = "https://www.thecolorapi.com"

// ColorService implements ColorNamer against The Color API
type ColorService struct {
	httpLookup
}

// Ensure ColorService implements ColorNamer
var _ ColorNamer = (*ColorService)(nil)

// NewColorService creates a color lookup client. An empty BaseURL uses the public API.
func NewColorService(opts LookupOptions) *ColorService {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultColorAPIURL
	}
	return &ColorService{httpLookup: newHTTPLookup(opts)}
}

// FetchColorName resolves hexColor ("#059669" or "059669") to a color name.
// Malformed input is rejected without a network call.
func (c *ColorService) FetchColorName(ctx context.Context, hexColor string) lookup.Result[string] {
	hex, ok := character.NormalizeHex(hexColor)
	if !ok {
		return lookup.Fail[string](lookup.ErrInvalidInput, lookup.Error{
			Message: c.text.Text(lookup.MsgInvalidFormat),
			Code:    lookup.CodeInvalidFormat,
		})
	}

	body, f := c.get(ctx, "/id", url.Values{"hex": {hex}}, lookup.MsgInvalidColor)
	if f != nil {
		return failed[string](f)
	}

	if !gjson.ValidBytes(body) {
		c.logger.Warn("Color API returned malformed JSON", "hex", hex)
		return failed[string](c.invalidResponse())
	}
	name := gjson.GetBytes(body, "name.value")
	if name.Type != gjson.String || name.String() == "" {
		c.logger.Warn("Color API response missing name", "hex", hex)
		return failed[string](c.invalidResponse())
	}

	c.logger.Debug("Color name resolved", "hex", hex, "name", name.String())
	return lookup.Ok(name.String())
}
