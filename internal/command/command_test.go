package command

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnicodeKeystroke(t *testing.T) {
	down, err := Parse("KUC65-1")
	require.NoError(t, err)
	assert.Equal(t, KeyUnicode{Code: 65, Down: true}, down)

	up, err := Parse("KUC65-0")
	require.NoError(t, err)
	assert.Equal(t, KeyUnicode{Code: 65, Down: false}, up)
}

func TestParseMouseWheelDown(t *testing.T) {
	cmd, err := Parse("MWD120-200")
	require.NoError(t, err)
	assert.Equal(t, MouseWheel{Direction: WheelDown, X: 120, Y: 200}, cmd)
}

func TestParseEncodingThenQualityThenFullscreen(t *testing.T) {
	enc, err := Parse("ECD1")
	require.NoError(t, err)
	assert.Equal(t, SetEncoding{Raw: 1}, enc)

	qlt, err := Parse("QLT75")
	require.NoError(t, err)
	assert.Equal(t, SetQuality{Quality: 75}, qlt)

	fsu, err := Parse("FSU")
	require.NoError(t, err)
	assert.Equal(t, FullscreenRequest{}, fsu)
}

func TestParseUnknownTagIgnored(t *testing.T) {
	cmd, err := Parse("ZZZsomething")
	assert.NoError(t, err)
	assert.Nil(t, cmd)
}

func TestParseMalformedArgsReturnsError(t *testing.T) {
	_, err := Parse("RSZnotadimension")
	require.Error(t, err)
	var malformed *ErrMalformed
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "RSZ", malformed.Tag)
}

func TestParsePasswordNeverIncludedInString(t *testing.T) {
	cmd, err := Parse("PWDsupersecret")
	require.NoError(t, err)
	pwd, ok := cmd.(SetPassword)
	require.True(t, ok)
	assert.NotContains(t, pwd.String(), "supersecret")
}

func TestParseServerWithPort(t *testing.T) {
	cmd, err := Parse("SRVhost.example.com:3389")
	require.NoError(t, err)
	assert.Equal(t, SetServer{Host: "host.example.com", Port: 3389, HasPort: true}, cmd)
}

func TestParseServerIPv6(t *testing.T) {
	cmd, err := Parse("SRV[::1]:3389")
	require.NoError(t, err)
	srv, ok := cmd.(SetServer)
	require.True(t, ok)
	assert.Equal(t, "[::1]", srv.Host)
	assert.Equal(t, 3389, srv.Port)
}

func TestParseScaleDisable(t *testing.T) {
	cmd, err := Parse("SCA0")
	require.NoError(t, err)
	assert.Equal(t, ScaleDisplay{Disable: true}, cmd)
}

func TestParseScaleEnable(t *testing.T) {
	cmd, err := Parse("SCA800x600")
	require.NoError(t, err)
	assert.Equal(t, ScaleDisplay{Width: 800, Height: 600}, cmd)
}

func TestExtendedScancodes(t *testing.T) {
	assert.True(t, IsExtendedScancode(71))
	assert.False(t, IsExtendedScancode(1))
}

func TestSplitRecordsAcrossBatch(t *testing.T) {
	sc := bufio.NewScanner(strings.NewReader("KUC65-1\tKUC65-0"))
	sc.Split(SplitRecords)

	var records []string
	for sc.Scan() {
		records = append(records, sc.Text())
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, []string{"KUC65-1", "KUC65-0"}, records)
}

func TestSplitRecordsHoldsPartialUntilTab(t *testing.T) {
	advance, token, err := SplitRecords([]byte("KUC65"), false)
	require.NoError(t, err)
	assert.Equal(t, 0, advance)
	assert.Nil(t, token)
}

func TestCloseCommand(t *testing.T) {
	cmd, err := Parse("CLO")
	require.NoError(t, err)
	assert.Equal(t, Close{}, cmd)
}
