package ui

import (
	"encoding/binary"
	"image"
	"image/color"
)

// EncodeICO encodes img as a single-image 32-bit ICO file. Images larger
// than 255 pixels on a side are not supported and are cropped.
func EncodeICO(img image.Image) []byte {
	b := img.Bounds()
	width, height := min(b.Dx(), 255), min(b.Dy(), 255)

	// ICONDIR (6) + ICONDIRENTRY (16) + BITMAPINFOHEADER (40) + XOR + AND
	xorSize := width * height * 4
	andSize := ((width + 31) / 32) * 4 * height
	dataSize := 40 + xorSize + andSize
	buf := make([]byte, 6+16+dataSize)

	// ICONDIR
	binary.LittleEndian.PutUint16(buf[2:], 1) // type: icon
	binary.LittleEndian.PutUint16(buf[4:], 1) // image count

	// ICONDIRENTRY
	buf[6] = byte(width)
	buf[7] = byte(height)
	binary.LittleEndian.PutUint16(buf[10:], 1)  // planes
	binary.LittleEndian.PutUint16(buf[12:], 32) // bits per pixel
	binary.LittleEndian.PutUint32(buf[14:], uint32(dataSize))
	binary.LittleEndian.PutUint32(buf[18:], 22)

	// BITMAPINFOHEADER; height doubled for the XOR and AND masks
	hdr := buf[22:]
	binary.LittleEndian.PutUint32(hdr[0:], 40)
	binary.LittleEndian.PutUint32(hdr[4:], uint32(width))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(height*2))
	binary.LittleEndian.PutUint16(hdr[12:], 1)
	binary.LittleEndian.PutUint16(hdr[14:], 32)
	binary.LittleEndian.PutUint32(hdr[20:], uint32(xorSize+andSize))

	// XOR mask, BGRA, bottom-up
	px := buf[22+40:]
	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := (row*width + x) * 4
			px[i] = c.B
			px[i+1] = c.G
			px[i+2] = c.R
			px[i+3] = c.A
		}
	}
	// AND mask stays zero: alpha decides transparency
	return buf
}
