package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const page = `<html>
<head><title>  Install Guide </title></head>
<body>
<nav><a href="home.html">Home</a></nav>
<div role="main">
  <h1>Install</h1>
  <p>See <a href="setup.html">setup</a>.</p>
  <img src="images/logo.png" alt="logo">
</div>
<footer>copyright</footer>
</body>
</html>`

func TestExtractMainContent(t *testing.T) {
	doc, title, err := New().Extract([]byte(page))
	require.NoError(t, err)
	require.Equal(t, "Install Guide", title)

	// Content keeps its images and links; nav chrome is gone.
	require.Equal(t, 1, doc.Find("img").Length())
	require.Equal(t, 1, doc.Find("a").Length())
	href, _ := doc.Find("a").Attr("href")
	require.Equal(t, "setup.html", href)
	require.Equal(t, 0, doc.Find("nav").Length())
	require.Equal(t, 0, doc.Find("footer").Length())
}

func TestExtractFallsBackToBody(t *testing.T) {
	doc, title, err := New().Extract([]byte(`<html><body><p>plain</p></body></html>`))
	require.NoError(t, err)
	require.Equal(t, "", title)
	require.Equal(t, "plain", doc.Find("p").Text())
}
