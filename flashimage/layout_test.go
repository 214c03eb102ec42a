package flashimage

import "testing"

func atmega328pLayout() Layout {
	// 32KB flash, 128B pages, 14 pages reserved for the bootloader itself.
	return Layout{PageSize: 128, PageCount: 256 - 14}
}

func TestLayoutSizes(t *testing.T) {
	l := atmega328pLayout()

	if got, want := l.ReadableSize(), 242*128; got != want {
		t.Errorf("ReadableSize() = %d, want %d", got, want)
	}
	if got, want := l.WritableSize(), l.ReadableSize()-2; got != want {
		t.Errorf("WritableSize() = %d, want %d", got, want)
	}
	if got, want := l.CRCComplementOffset(), l.ReadableSize()-2; got != want {
		t.Errorf("CRCComplementOffset() = %d, want %d", got, want)
	}
	if got, want := l.CRCOffset(), l.ReadableSize()-1; got != want {
		t.Errorf("CRCOffset() = %d, want %d", got, want)
	}
	if got, want := l.LastPage(), l.PageCount-1; got != want {
		t.Errorf("LastPage() = %d, want %d", got, want)
	}
}

func TestLayoutPageRange(t *testing.T) {
	l := Layout{PageSize: 128, PageCount: 10}

	tests := []struct {
		name             string
		offset, size     int
		wantStart, wantEnd int
	}{
		{"single page aligned", 0, 128, 0, 0},
		{"single page mid", 10, 5, 0, 0},
		{"spans two pages", 120, 16, 0, 1},
		{"exactly two pages", 128, 256, 1, 2},
		{"three byte patch crossing boundary", 127, 3, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := l.PageRange(tt.offset, tt.size)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("PageRange(%d, %d) = (%d, %d), want (%d, %d)",
					tt.offset, tt.size, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestLayoutPageAligned(t *testing.T) {
	l := Layout{PageSize: 128, PageCount: 10}

	if !l.PageAligned(0) {
		t.Errorf("PageAligned(0) = false, want true")
	}
	if !l.PageAligned(256) {
		t.Errorf("PageAligned(256) = false, want true")
	}
	if l.PageAligned(1) {
		t.Errorf("PageAligned(1) = true, want false")
	}
}

func TestLayoutPageOffset(t *testing.T) {
	l := Layout{PageSize: 128, PageCount: 10}
	if got := l.PageOffset(3); got != 384 {
		t.Errorf("PageOffset(3) = %d, want 384", got)
	}
}
