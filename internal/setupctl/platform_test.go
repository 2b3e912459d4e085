package setupctl

import "testing"

func TestClassifyPlatform(t *testing.T) {
	cases := []struct {
		goos        string
		procVersion string
		want        HostPlatform
	}{
		{"darwin", "", PlatformDarwin},
		{"linux", "Linux version 6.8.0-41-generic (buildd@lcy02)", PlatformLinux},
		{"linux", "Linux version 5.15.153.1-microsoft-standard-WSL2", PlatformWSL},
		{"linux", "Linux version 4.4.0-19041-Microsoft", PlatformWSL},
		{"windows", "", PlatformUnsupported},
		{"freebsd", "", PlatformUnsupported},
		{"js", "", PlatformUnsupported},
	}
	for _, c := range cases {
		if got := classifyPlatform(c.goos, c.procVersion); got != c.want {
			t.Errorf("classifyPlatform(%q, %q) = %v, want %v", c.goos, c.procVersion, got, c.want)
		}
	}
}

func TestDetectIsTotal(t *testing.T) {
	// whatever the host, Detect must return a value rather than fail
	p := Detect()
	if p.String() == "" {
		t.Fatalf("Detect returned a platform with no name")
	}
}

func TestPlatformString(t *testing.T) {
	if PlatformUnsupported.String() != "unsupported" {
		t.Fatalf("unexpected: %q", PlatformUnsupported.String())
	}
	if PlatformDarwin.String() != "macos" {
		t.Fatalf("unexpected: %q", PlatformDarwin.String())
	}
}
