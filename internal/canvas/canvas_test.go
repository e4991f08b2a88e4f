package canvas

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDoubleBuffering(t *testing.T) {
	m := NewMemory(2, 2)

	// Writes land on the back buffer and stay invisible until Swap.
	m.SetPixel(1, 0, 7, 8, 9)
	r, g, b := m.Pixel(1, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	require.NoError(t, m.Swap())
	r, g, b = m.Pixel(1, 0)
	assert.Equal(t, [3]uint8{7, 8, 9}, [3]uint8{r, g, b})
	assert.Equal(t, 1, m.Swaps())

	// Out-of-range writes are clipped.
	m.SetPixel(-1, 0, 1, 1, 1)
	m.SetPixel(2, 5, 1, 1, 1)

	m.Clear()
	r, g, b = m.Pixel(1, 0)
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestFactoryBackends(t *testing.T) {
	c, err := New("", 4, 4, nil)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = New("memory", 4, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Width())

	_, err = New("hub75", 4, 4, nil)
	assert.Error(t, err)
}

func TestPNGDirWritesSnapshots(t *testing.T) {
	dir := t.TempDir()
	c, err := New("png", 3, 2, map[string]any{"dir": dir})
	require.NoError(t, err)

	c.SetPixel(0, 0, 255, 0, 0)
	require.NoError(t, c.Swap())
	require.NoError(t, c.Swap())

	f, err := os.Open(filepath.Join(dir, "frame-000000.png"))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())

	_, err = os.Stat(filepath.Join(dir, "frame-000001.png"))
	assert.NoError(t, err)
}
