package tmx

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func (d *Data) decode(width, height int) ([]GID, error) {
	switch d.Encoding {
	case "csv":
		return d.decodeCSV(width, height)
	case "base64":
		return d.decodeBase64(width, height)
	case "":
		return d.decodeXML(width, height)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, d.Encoding)
}

func (d *Data) decodeCSV(width, height int) ([]GID, error) {
	keep := func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' {
			return r
		}
		return -1
	}
	fields := strings.Split(strings.Map(keep, string(d.Raw)), ",")
	if len(fields) != width*height {
		return nil, ErrBadDataLength
	}

	gids := make([]GID, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tmx: csv cell %d: %w", i, err)
		}
		gids[i] = GID(v)
	}
	return gids, nil
}

func (d *Data) decodeBase64(width, height int) ([]GID, error) {
	raw := bytes.TrimSpace(d.Raw)
	enc := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(raw))

	var r io.Reader
	switch d.Compression {
	case "gzip":
		gz, err := gzip.NewReader(enc)
		if err != nil {
			return nil, fmt.Errorf("tmx: gzip: %w", err)
		}
		defer gz.Close()
		r = gz
	case "zlib":
		zr, err := zlib.NewReader(enc)
		if err != nil {
			return nil, fmt.Errorf("tmx: zlib: %w", err)
		}
		defer zr.Close()
		r = zr
	case "":
		r = enc
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, d.Compression)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("tmx: read layer data: %w", err)
	}
	if len(data) != width*height*4 {
		return nil, ErrBadDataLength
	}

	gids := make([]GID, width*height)
	for i := range gids {
		j := i * 4
		gids[i] = GID(data[j]) | GID(data[j+1])<<8 | GID(data[j+2])<<16 | GID(data[j+3])<<24
	}
	return gids, nil
}

func (d *Data) decodeXML(width, height int) ([]GID, error) {
	if len(d.Tiles) != width*height {
		return nil, ErrBadDataLength
	}
	gids := make([]GID, len(d.Tiles))
	for i, t := range d.Tiles {
		gids[i] = t.GID
	}
	return gids, nil
}

// Decode parses a polygon/polyline points attribute ("x0,y0 x1,y1 ...").
func (p *PointList) Decode() ([]Point, error) {
	fields := strings.Fields(p.Points)
	points := make([]Point, len(fields))
	for i, f := range fields {
		xy := strings.Split(f, ",")
		if len(xy) != 2 {
			return nil, ErrBadPoints
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPoints, f)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadPoints, f)
		}
		points[i] = Point{X: x, Y: y}
	}
	return points, nil
}
