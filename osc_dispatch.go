package vtcore

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// applyOSC interprets one parsed OSC command (the 0/1/2/4/8/10/
// 11/12/52/104/110/111/112/133 set). Unsupported or malformed argument shapes are
// ignored rather than logged as parser errors — a host sending an OSC
// this core doesn't model (e.g. OSC 7 cwd notification) is not a
// protocol violation.
func (c *Core) applyOSC(e ParserEvent) {
	switch e.OSCCommand {
	case 0:
		if len(e.OSCArgs) > 0 {
			c.windowTitle = e.OSCArgs[0]
			c.iconTitle = e.OSCArgs[0]
		}
	case 1:
		if len(e.OSCArgs) > 0 {
			c.iconTitle = e.OSCArgs[0]
		}
	case 2:
		if len(e.OSCArgs) > 0 {
			c.windowTitle = e.OSCArgs[0]
		}
	case 4:
		c.oscSetPalette(e.OSCArgs)
	case 8:
		// Hyperlink (id=...;uri). Recorded on the pen so subsequent
		// writes carry it; an empty uri closes the hyperlink.
		c.oscHyperlink(e.OSCArgs)
	case 10, 11, 12:
		c.oscQueryOrSetDynamicColor(e.OSCCommand, e.OSCArgs)
	case 52:
		c.oscClipboard(e.OSCArgs)
	case 104:
		c.palette = nil
	case 110:
		c.defaultFG = nil
	case 111:
		c.defaultBG = nil
	case 112:
		c.defaultCursor = nil
	case 133:
		// Shell integration marks (prompt/command/output boundaries).
		// Core records nothing for these; a host-level collaborator
		// that wants jump-to-prompt navigation owns that state.
	default:
		// Unrecognized OSC command; no effect.
	}
}

func (c *Core) oscSetPalette(args []string) {
	if c.palette == nil {
		var p [16]RGB8
		for i := range p {
			p[i] = basePalette[i]
		}
		c.palette = &p
	}
	for i := 0; i+1 < len(args); i += 2 {
		idx, err := strconv.Atoi(args[i])
		if err != nil || idx < 0 || idx >= 16 {
			continue
		}
		if rgb, ok := parseXParseColor(args[i+1]); ok {
			c.palette[idx] = rgb
		}
	}
}

// parseXParseColor parses the rgb:RRRR/GGGG/BBBB or #RRGGBB forms OSC
// 4/10/11/12 use, per XParseColor. Only 8-bit-per-channel precision is
// kept; 16-bit channel values are truncated to their high byte.
func parseXParseColor(s string) (RGB8, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, err1 := strconv.ParseUint(s[1:3], 16, 8)
		g, err2 := strconv.ParseUint(s[3:5], 16, 8)
		b, err3 := strconv.ParseUint(s[5:7], 16, 8)
		if err1 != nil || err2 != nil || err3 != nil {
			return RGB8{}, false
		}
		return RGB8{R: uint8(r), G: uint8(g), B: uint8(b)}, true
	}
	if strings.HasPrefix(s, "rgb:") {
		parts := strings.Split(s[4:], "/")
		if len(parts) != 3 {
			return RGB8{}, false
		}
		chan8 := func(p string) (uint8, bool) {
			v, err := strconv.ParseUint(p, 16, 32)
			if err != nil {
				return 0, false
			}
			if len(p) > 2 {
				v >>= uint(4 * (len(p) - 2))
			}
			return uint8(v), true
		}
		r, ok1 := chan8(parts[0])
		g, ok2 := chan8(parts[1])
		b, ok3 := chan8(parts[2])
		if !ok1 || !ok2 || !ok3 {
			return RGB8{}, false
		}
		return RGB8{R: r, G: g, B: b}, true
	}
	return RGB8{}, false
}

// oscHyperlink implements OSC 8: start/end a hyperlink run. A host
// sequence that omits the "id=" grouping parameter still needs one
// internally so two adjacent writes of the same URI are recognized as
// the same link (e.g. for hover-highlighting);
// a synthetic id is minted with google/uuid rather than left empty,
// matching the pattern noppefoxwolf/vibetunnel uses the same library
// for (session/client identifiers).
func (c *Core) oscHyperlink(args []string) {
	uri := ""
	params := ""
	switch len(args) {
	case 0:
	case 1:
		uri = args[0]
	default:
		params = args[0]
		uri = args[1]
	}
	id := ""
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			id = strings.TrimPrefix(kv, "id=")
		}
	}
	if uri == "" {
		c.cursor.Pen.Hyperlink = ""
		c.cursor.Pen.HyperlinkID = ""
		return
	}
	if id == "" {
		id = uuid.NewString()
	}
	c.cursor.Pen.Hyperlink = uri
	c.cursor.Pen.HyperlinkID = id
}

func (c *Core) oscQueryOrSetDynamicColor(cmd int, args []string) {
	if len(args) == 0 {
		return
	}
	slot := ColorDefaultForeground
	switch cmd {
	case 11:
		slot = ColorDefaultBackground
	case 12:
		slot = ColorDefaultCursor
	}
	arg := args[0]
	if arg == "?" {
		rgb := c.ResolveColor(NamedColor(slot))
		c.queueResponse("\x1b]" + strconv.Itoa(cmd) + ";rgb:" +
			hexByte(rgb.R) + hexByte(rgb.R) + "/" + hexByte(rgb.G) + hexByte(rgb.G) + "/" + hexByte(rgb.B) + hexByte(rgb.B) + "\x07")
		return
	}
	if rgb, ok := parseXParseColor(arg); ok {
		switch slot {
		case ColorDefaultForeground:
			c.defaultFG = &rgb
		case ColorDefaultBackground:
			c.defaultBG = &rgb
		case ColorDefaultCursor:
			c.defaultCursor = &rgb
		}
	}
}

func (c *Core) oscClipboard(args []string) {
	if len(args) < 2 {
		return
	}
	if args[1] == "?" {
		// Core has no clipboard of its own to read back; a host
		// collaborator that owns the system clipboard answers this by
		// intercepting OSCDispatch before (or instead of) Core, per
		// the collaborator boundary described in collaborators.go.
		return
	}
	// Validate it decodes; Core does not retain clipboard contents
	// itself (no system clipboard access from inside the core).
	_, _ = base64.StdEncoding.DecodeString(args[1])
}
