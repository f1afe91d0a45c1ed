package webchat

import _ "embed"

// DefaultWidgetJS is the embeddable chat widget served at /chat/widget.js.
//
//go:embed widget.js
var DefaultWidgetJS []byte
