package network

import (
	"fmt"
	"math/rand"

	"github.com/corpix/uarand"
)

// RandomUserAgent returns a random realistic User-Agent string, weighted
// roughly 60% desktop / 30% mobile across a closed family of generators,
// with the remainder drawn from uarand's generic pool as a catch-all so the
// distribution isn't entirely hand-authored.
func RandomUserAgent() string {
	switch {
	case rand.Float64() < 0.1:
		return uarand.GetRandom()
	case rand.Float64() < 0.35:
		return RandomMobileUserAgent()
	default:
		return RandomDesktopUserAgent()
	}
}

var desktopGenerators = []func() string{
	uaWinChrome,
	uaWinEdge,
	uaWinFirefox,
	uaMacChrome,
	uaMacSafari,
	uaLinuxChrome,
	uaLinuxFirefox,
}

var mobileGenerators = []func() string{
	uaIosIphoneSafari,
	uaIosIpadSafari,
	uaAndroidPhoneChrome,
	uaAndroidTabletChrome,
}

// RandomDesktopUserAgent forces a desktop User-Agent (Windows/macOS/Linux).
func RandomDesktopUserAgent() string {
	return desktopGenerators[rand.Intn(len(desktopGenerators))]()
}

// RandomMobileUserAgent forces a mobile User-Agent (iOS/Android).
func RandomMobileUserAgent() string {
	return mobileGenerators[rand.Intn(len(mobileGenerators))]()
}

func pick(vals []string) string {
	return vals[rand.Intn(len(vals))]
}

// chromeVer generates a realistic Chrome version triplet: major 120-128,
// build 6000-7100, patch 10-200, rendered as Chrome/<major>.0.<build>.<patch>
// is not how Chrome does it; the UA format here follows the teacher's pack
// convention of Chrome/<major>.<patch>.<build>.
func chromeVer() (major, build, patch int) {
	major = 120 + rand.Intn(9)
	build = 6000 + rand.Intn(1101)
	patch = 10 + rand.Intn(191)
	return
}

func firefoxMajor() int {
	return 115 + rand.Intn(16)
}

func uaWinChrome() string {
	winNT := pick([]string{"10.0", "10.0", "10.0", "11.0"})
	chrome, build, patch := chromeVer()
	return fmt.Sprintf("Mozilla/5.0 (Windows NT %s; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.%d.%d Safari/537.36", winNT, chrome, patch, build)
}

func uaWinEdge() string {
	winNT := pick([]string{"10.0", "10.0", "11.0"})
	chrome, build, patch := chromeVer()
	return fmt.Sprintf("Mozilla/5.0 (Windows NT %s; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.%d.%d Safari/537.36 Edg/%d.%d.%d", winNT, chrome, patch, build, chrome, patch, build)
}

func uaWinFirefox() string {
	winNT := pick([]string{"10.0", "10.0", "11.0"})
	ff := firefoxMajor()
	return fmt.Sprintf("Mozilla/5.0 (Windows NT %s; Win64; x64; rv:%d.0) Gecko/20100101 Firefox/%d.0", winNT, ff, ff)
}

func uaMacChrome() string {
	mac := pick([]string{"10_15_7", "11_7_10", "12_7_6", "13_6_7", "14_6", "14_5", "14_4_1"})
	chrome, build, patch := chromeVer()
	return fmt.Sprintf("Mozilla/5.0 (Macintosh; Intel Mac OS X %s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.%d.%d Safari/537.36", mac, chrome, patch, build)
}

func uaMacSafari() string {
	mac := pick([]string{"12_7_6", "13_6_7", "14_6", "14_5", "14_4_1"})
	safariVer := pick([]string{"16.6", "17.0", "17.3", "17.4", "17.5", "17.6"})
	return fmt.Sprintf("Mozilla/5.0 (Macintosh; Intel Mac OS X %s) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%s Safari/605.1.15", mac, safariVer)
}

func uaLinuxChrome() string {
	chrome, build, patch := chromeVer()
	return fmt.Sprintf("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.%d.%d Safari/537.36", chrome, patch, build)
}

func uaLinuxFirefox() string {
	ff := firefoxMajor()
	return fmt.Sprintf("Mozilla/5.0 (X11; Linux x86_64; rv:%d.0) Gecko/20100101 Firefox/%d.0", ff, ff)
}

func uaIosIphoneSafari() string {
	ios := pick([]string{"16_6", "17_0", "17_1", "17_2", "17_3", "17_4", "17_5", "17_6"})
	version := dotify(ios)
	build := pick([]string{"15E148", "16E227", "17E262", "20E247", "21E230"})
	return fmt.Sprintf("Mozilla/5.0 (iPhone; CPU iPhone OS %s like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%s Mobile/%s Safari/604.1", ios, version, build)
}

func uaIosIpadSafari() string {
	ios := pick([]string{"16_6", "17_0", "17_1", "17_3", "17_4", "17_5", "17_6"})
	version := dotify(ios)
	build := pick([]string{"15E148", "16E227", "17E262", "20E247", "21E230"})
	return fmt.Sprintf("Mozilla/5.0 (iPad; CPU OS %s like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%s Mobile/%s Safari/604.1", ios, version, build)
}

func uaAndroidPhoneChrome() string {
	android := pick([]string{"10", "11", "12", "13", "14"})
	device := pick([]string{
		"Pixel 5", "Pixel 6", "Pixel 6a", "Pixel 7", "Pixel 7 Pro", "Pixel 8",
		"SM-G991B", "SM-G996B", "SM-G998B", "SM-S911B", "SM-S916B", "SM-S918B",
		"CPH2409", "VOG-L29",
	})
	chrome, build, patch := chromeVer()
	return fmt.Sprintf("Mozilla/5.0 (Linux; Android %s; %s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.%d.%d Mobile Safari/537.36", android, device, chrome, patch, build)
}

func uaAndroidTabletChrome() string {
	android := pick([]string{"10", "11", "12", "13", "14"})
	device := pick([]string{"SM-T870", "SM-X700", "SM-X706B", "Nexus 10", "Pixel Tablet"})
	chrome, build, patch := chromeVer()
	return fmt.Sprintf("Mozilla/5.0 (Linux; Android %s; %s) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%d.%d.%d Safari/537.36", android, device, chrome, patch, build)
}

func dotify(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			out[i] = '.'
		} else {
			out[i] = s[i]
		}
	}
	return string(out)
}
