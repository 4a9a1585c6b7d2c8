package assets

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Face is the HUD and menu font.
var Face text.Face = text.NewGoXFace(basicfont.Face7x13)
