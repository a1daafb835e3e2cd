package artifact

import (
	"errors"
	"strings"
	"testing"

	"github.com/ycwang/poster-pilot/internal/apperr"
)

func validProduct() ProductInfo {
	return ProductInfo{
		Name:        "冷萃咖啡壺",
		Description: "一鍵冷萃，四小時完成冰滴風味，適合居家使用。",
		Market:      "台灣",
	}
}

func TestProductInfoValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProductInfo)
		wantOK bool
	}{
		{"valid", func(p *ProductInfo) {}, true},
		{"valid with url", func(p *ProductInfo) { p.URL = "https://example.com/product" }, true},
		{"empty name", func(p *ProductInfo) { p.Name = "   " }, false},
		{"name too long", func(p *ProductInfo) { p.Name = strings.Repeat("名", MaxNameLength+1) }, false},
		{"name at limit", func(p *ProductInfo) { p.Name = strings.Repeat("名", MaxNameLength) }, true},
		{"description too short", func(p *ProductInfo) { p.Description = "短描述" }, false},
		{"description at minimum", func(p *ProductInfo) { p.Description = strings.Repeat("描", MinDescriptionLength) }, true},
		{"description too long", func(p *ProductInfo) { p.Description = strings.Repeat("描", MaxDescriptionLength+1) }, false},
		{"empty market", func(p *ProductInfo) { p.Market = "" }, false},
		{"market too long", func(p *ProductInfo) { p.Market = strings.Repeat("市", MaxMarketLength+1) }, false},
		{"relative url", func(p *ProductInfo) { p.URL = "/product/123" }, false},
		{"url without scheme", func(p *ProductInfo) { p.URL = "example.com/product" }, false},
		{"empty image payload", func(p *ProductInfo) { p.Image = &InlineImage{MIMEType: "image/png"} }, false},
		{"unsupported image type", func(p *ProductInfo) {
			p.Image = &InlineImage{Data: []byte{1}, MIMEType: "image/tiff"}
		}, false},
		{"supported image type", func(p *ProductInfo) {
			p.Image = &InlineImage{Data: []byte{1}, MIMEType: "image/webp"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantOK {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var ae *apperr.Error
			if !errors.As(err, &ae) || ae.Kind != apperr.PreconditionFailed {
				t.Errorf("Validate() error = %v, want PreconditionFailed", err)
			}
		})
	}
}

func TestBoundsCountRunesNotBytes(t *testing.T) {
	// 100 CJK characters are 300 bytes but must pass the 100-character limit.
	p := validProduct()
	p.Name = strings.Repeat("茶", MaxNameLength)
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for %d-rune name", err, MaxNameLength)
	}
}
