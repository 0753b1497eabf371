package vtcore

// ApplySGR folds one CSI m sequence's parameters into pen, returning
// the updated FormatState. pen is never mutated in place — FormatState
// is a plain value, and ActionApplier is expected to replace
// CursorState.Pen with the result.
//
// Ported from purfecterm's parser.go SGR switch, generalized to the
// extended 38/48/58 colon-subparameter syntax (256-color and
// true-color) that purfecterm's terminal-emulator-as-GUI-widget use
// case never needed to emit, only to receive.
func ApplySGR(pen FormatState, params []SGRParam) FormatState {
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p.Base == 0:
			autoWrap := pen.AutoWrap
			pen = DefaultFormatState()
			pen.AutoWrap = autoWrap
		case p.Base == 1:
			pen.Weight = WeightBold
			pen.Faint = false
		case p.Base == 2:
			pen.Faint = true
			pen.Weight = WeightNormal
		case p.Base == 3:
			pen.Italic = true
		case p.Base == 4:
			pen.Underline = true
			pen.UnderlineKind = sgrUnderlineStyle(p)
		case p.Base == 7:
			pen.Reverse = true
		case p.Base == 9:
			pen.Strikethrough = true
		case p.Base == 22:
			pen.Weight = WeightNormal
			pen.Faint = false
		case p.Base == 23:
			pen.Italic = false
		case p.Base == 24:
			pen.Underline = false
			pen.UnderlineKind = UnderlineStyleNone
		case p.Base == 27:
			pen.Reverse = false
		case p.Base == 29:
			pen.Strikethrough = false
		case p.Base >= 30 && p.Base <= 37:
			pen.Foreground = NamedColor(ColorSlot(int(ColorBlack) + p.Base - 30))
		case p.Base == 38:
			color, consumed := extractExtendedColor(params[i:])
			pen.Foreground = color
			i += consumed
			continue
		case p.Base == 39:
			pen.Foreground = NamedColor(ColorDefaultForeground)
		case p.Base >= 40 && p.Base <= 47:
			pen.Background = NamedColor(ColorSlot(int(ColorBlack) + p.Base - 40))
		case p.Base == 48:
			color, consumed := extractExtendedColor(params[i:])
			pen.Background = color
			i += consumed
			continue
		case p.Base == 49:
			pen.Background = NamedColor(ColorDefaultBackground)
		case p.Base == 58:
			color, consumed := extractExtendedColor(params[i:])
			pen.UnderlineColor = color
			pen.HasUnderlineColor = true
			i += consumed
			continue
		case p.Base == 59:
			pen.HasUnderlineColor = false
		case p.Base >= 90 && p.Base <= 97:
			pen.Foreground = NamedColor(ColorSlot(int(ColorBrightBlack) + p.Base - 90))
		case p.Base >= 100 && p.Base <= 107:
			pen.Background = NamedColor(ColorSlot(int(ColorBrightBlack) + p.Base - 100))
		}
		i++
	}
	return pen
}

func sgrUnderlineStyle(p SGRParam) UnderlineStyle {
	if len(p.Subs) == 0 {
		return UnderlineStyleSingle
	}
	switch p.Subs[0] {
	case 0:
		return UnderlineStyleNone
	case 2:
		return UnderlineStyleDouble
	case 3:
		return UnderlineStyleCurly
	case 4:
		return UnderlineStyleDotted
	case 5:
		return UnderlineStyleDashed
	default:
		return UnderlineStyleSingle
	}
}

// extractExtendedColor parses the 38/48/58 extended color syntax in
// either its colon-subparameter form (38:5:n or 38:2:r:g:b, a single
// SGRParam) or its legacy semicolon-separated form (38;5;n or
// 38;2;r;g;b, spread across consecutive SGRParams). It returns the
// resolved color and how many entries of params (starting at index 0,
// the 38/48/58 itself) were consumed.
func extractExtendedColor(params []SGRParam) (ColorValue, int) {
	if len(params) == 0 {
		return NamedColor(ColorDefaultForeground), 1
	}
	head := params[0]
	if len(head.Subs) > 0 {
		switch head.Subs[0] {
		case 5:
			if len(head.Subs) >= 2 {
				return Palette256Color(head.Subs[1]), 1
			}
		case 2:
			if len(head.Subs) >= 4 {
				return CustomColor(uint8(head.Subs[len(head.Subs)-3]), uint8(head.Subs[len(head.Subs)-2]), uint8(head.Subs[len(head.Subs)-1])), 1
			}
		}
		return NamedColor(ColorDefaultForeground), 1
	}

	if len(params) < 2 {
		return NamedColor(ColorDefaultForeground), 1
	}
	switch params[1].Base {
	case 5:
		if len(params) >= 3 {
			return Palette256Color(params[2].Base), 3
		}
		return NamedColor(ColorDefaultForeground), 2
	case 2:
		if len(params) >= 5 {
			return CustomColor(uint8(params[2].Base), uint8(params[3].Base), uint8(params[4].Base)), 5
		}
		return NamedColor(ColorDefaultForeground), 2
	default:
		return NamedColor(ColorDefaultForeground), 1
	}
}
