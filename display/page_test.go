package display

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		index     int
		want      Kind
		landscape bool
		status    bool
	}{
		{0, LandscapeStatus, true, true},
		{1, LandscapeImage, true, false},
		{2, PortraitStatus, false, true},
		{3, PortraitImage, false, false},
		{4, LandscapeStatus, true, true},
		{-1, PortraitImage, false, false},
	}
	for _, tt := range tests {
		k := KindOf(tt.index)
		if k != tt.want {
			t.Errorf("KindOf(%d) = %v, want %v", tt.index, k, tt.want)
		}
		if k.Landscape() != tt.landscape {
			t.Errorf("%v.Landscape() = %v, want %v", k, k.Landscape(), tt.landscape)
		}
		if k.Status() != tt.status {
			t.Errorf("%v.Status() = %v, want %v", k, k.Status(), tt.status)
		}
	}
}

func TestPagerAdvanceModulo(t *testing.T) {
	for start := 0; start < NumPages; start++ {
		for n := 0; n <= 9; n++ {
			p := Pager{index: start}
			prev := p.Index()
			for i := 0; i < n; i++ {
				p.Advance()
				if p.Index() == prev {
					t.Fatalf("start %d: advance %d left index at %d", start, i, prev)
				}
				prev = p.Index()
			}
			if want := (start + n) % NumPages; p.Index() != want {
				t.Errorf("start %d, %d advances: index %d, want %d", start, n, p.Index(), want)
			}
		}
	}
}

func TestPagerCycleOrder(t *testing.T) {
	var p Pager
	want := []Kind{LandscapeImage, PortraitStatus, PortraitImage, LandscapeStatus}
	for i, w := range want {
		if got := p.Advance(); got != w {
			t.Errorf("advance %d = %v, want %v", i+1, got, w)
		}
	}
}

func TestPagerRefreshDue(t *testing.T) {
	want := map[int]bool{0: true, 1: false, 2: true, 3: false}
	for i, due := range want {
		p := Pager{index: i}
		if p.RefreshDue() != due {
			t.Errorf("page %d RefreshDue = %v, want %v", i, p.RefreshDue(), due)
		}
	}
}
