package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func probeLocale(t *testing.T, configure func(*http.Request)) (locale, country string) {
	t.Helper()
	handler := I18N("en", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale = LocaleFromContext(r.Context())
		country = CountryFromContext(r.Context())
	}))
	req := httptest.NewRequest("GET", "/v1/campaigns", nil)
	configure(req)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return locale, country
}

func TestI18NNegotiatesFromAcceptLanguage(t *testing.T) {
	locale, _ := probeLocale(t, func(r *http.Request) {
		r.Header.Set("Accept-Language", "id-ID,id;q=0.9,en;q=0.5")
	})
	if locale != "id" {
		t.Fatalf("locale: got %q want %q", locale, "id")
	}
}

func TestI18NXLocaleWins(t *testing.T) {
	locale, _ := probeLocale(t, func(r *http.Request) {
		r.Header.Set("X-Locale", "es")
		r.Header.Set("Accept-Language", "id")
	})
	if locale != "es" {
		t.Fatalf("locale: got %q want %q", locale, "es")
	}
}

func TestI18NMalformedHeaderUsesConfiguredDefault(t *testing.T) {
	var locale string
	handler := I18N("id", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale = LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest("GET", "/v1/campaigns", nil)
	req.Header.Set("Accept-Language", "!!!")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if locale != "id" {
		t.Fatalf("locale: got %q want %q", locale, "id")
	}
}

func TestI18NUnsupportedFallsBack(t *testing.T) {
	locale, _ := probeLocale(t, func(r *http.Request) {
		r.Header.Set("Accept-Language", "zz")
	})
	if locale != "en" {
		t.Fatalf("locale: got %q want %q", locale, "en")
	}
}

func TestI18NCountryFromHeader(t *testing.T) {
	_, country := probeLocale(t, func(r *http.Request) {
		r.Header.Set("CF-IPCountry", "br")
	})
	if country != "BR" {
		t.Fatalf("country: got %q want %q", country, "BR")
	}
}

func TestResolveCountryUsesLookup(t *testing.T) {
	handler := I18N("en", func(ip string) (string, error) {
		if ip != "203.0.113.9" {
			t.Fatalf("lookup called with %q", ip)
		}
		return "ke", nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := CountryFromContext(r.Context()); got != "KE" {
			t.Fatalf("country: got %q want %q", got, "KE")
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:4444"
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
