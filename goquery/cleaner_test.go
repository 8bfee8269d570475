package goquery_test

import (
	"testing"

	"github.com/natmusissunny/legalrights/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	cleaner := goquery.NewCleaner()

	t.Run("removes scripts, navigation and comments", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script>var x = 1;</script><style>p{}</style></head><body>
<nav><a href="/">首页</a></nav>
<!-- tracking -->
<div class="content"><p>第四十七条 经济补偿按劳动者在本单位工作的年限支付。</p></div>
<footer>版权所有</footer>
</body></html>`

		cleaned, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.Contains(t, cleaned, "第四十七条")
		assert.NotContains(t, cleaned, "var x")
		assert.NotContains(t, cleaned, "首页")
		assert.NotContains(t, cleaned, "tracking")
		assert.NotContains(t, cleaned, "版权所有")
	})

	t.Run("removes noise classes and ids by whole word", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<div class="share-box">分享到微博</div>
<div id="comments">评论区</div>
<div class="ad">广告</div>
<h2 class="section-heading">劳动合同的解除</h2>
<div class="download">附件下载</div>
</body>`

		cleaned, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.NotContains(t, cleaned, "分享到微博")
		assert.NotContains(t, cleaned, "评论区")
		assert.NotContains(t, cleaned, "广告")
		assert.Contains(t, cleaned, "劳动合同的解除")
		assert.Contains(t, cleaned, "附件下载")
	})

	t.Run("removes elements left empty", func(t *testing.T) {
		t.Parallel()

		html := `<body><div id="wrap"><span>  </span></div><p>正文</p><img src="a.png"></body>`

		cleaned, err := cleaner.Clean(html)

		require.NoError(t, err)
		assert.NotContains(t, cleaned, "wrap")
		assert.NotContains(t, cleaned, "<span>")
		assert.Contains(t, cleaned, `<img src="a.png"/>`)
		assert.Contains(t, cleaned, "<p>正文</p>")
	})

	t.Run("returns empty string for blank input", func(t *testing.T) {
		t.Parallel()

		cleaned, err := cleaner.Clean("   ")

		require.NoError(t, err)
		assert.Empty(t, cleaned)
	})
}

func TestCleaner_Title(t *testing.T) {
	t.Parallel()

	cleaner := goquery.NewCleaner()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "prefers h1",
			html: `<html><head><title>站点 - 劳动法</title></head><body><h1> 中华人民共和国劳动合同法 </h1></body></html>`,
			want: "中华人民共和国劳动合同法",
		},
		{
			name: "falls back to title",
			html: `<html><head><title>劳动争议调解仲裁法</title></head><body><p>x</p></body></html>`,
			want: "劳动争议调解仲裁法",
		},
		{
			name: "falls back to og:title",
			html: `<html><head><meta property="og:title" content="工伤保险条例"></head><body></body></html>`,
			want: "工伤保险条例",
		},
		{
			name: "returns empty when no title",
			html: `<html><body><p>正文</p></body></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cleaner.Title(tt.html))
		})
	}
}
