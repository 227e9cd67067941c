package fractal

// PlaneCoordinate converts the (column, row) pixel of a width by height
// frame to the complex-plane point it covers. The pixel is centered on the
// frame, scaled by zoom (plane units per pixel; smaller means more
// magnified) and shifted by the viewport offset. Both axes use the exact
// same formula so every kernel shares one coordinate system under pan and
// zoom.
//
// The centering subtraction happens in integer space so the center pixel
// (width/2, height/2) maps to exactly (offsetX, offsetY) for odd and even
// dimensions alike.
func PlaneCoordinate(column, row, width, height int, zoom, offsetX, offsetY float64) (re, im float64) {
	re = float64(column-width/2)*zoom + offsetX
	im = float64(row-height/2)*zoom + offsetY
	return re, im
}
