package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// lookups de DNS não podem segurar o cadastro indefinidamente
const dnsTimeout = 3 * time.Second

var resolver = &net.Resolver{}

// IsEmailDomainValid confere se o domínio do e-mail resolve (MX ou,
// na falta dele, um registro de endereço). Não garante entrega, só
// barra domínio digitado errado.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if domain == "" || strings.Contains(domain, " ") {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()

	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := resolver.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
