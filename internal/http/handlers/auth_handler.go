package handlers

import (
	"errors"
	"time"

	applog "isaarte/internal/log"
	"isaarte/internal/services"
	"isaarte/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Recovery *services.RecoveryService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	return render(c, "login", fiber.Map{"Err": "", "CSRFToken": tok})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "E-mail ou senha inválidos", "CSRFToken": c.Cookies("csrf_")})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "E-mail ou senha inválidos", "CSRFToken": c.Cookies("csrf_")})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	setFlash(c, "Bem-vindo, "+u.Name+"!")
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	name, okName := validate.Name(c.FormValue("name"))
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")

	fail := func(msg string) error {
		return c.Status(400).Render("register", fiber.Map{"Err": msg, "CSRFToken": c.Cookies("csrf_")})
	}
	if !okName {
		return fail("Nome deve ter pelo menos 3 caracteres")
	}
	if !okEmail {
		return fail("E-mail inválido")
	}
	if !validate.Password(pass) {
		return fail("Senha fraca: use maiúsculas, minúsculas, números e símbolos")
	}
	if pass != c.FormValue("confirm") {
		return fail("As senhas não correspondem")
	}

	u, err := h.Auth.Register(sid, name, email, pass)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return fail("E-mail já cadastrado")
		}
		applog.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return fail("Não foi possível criar a conta")
	}

	applog.Audit(c, "auth.register", map[string]any{"user_id": u.ID})
	setFlash(c, "Bem-vindo, "+u.Name+"!")
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	setFlash(c, "Sessão encerrada com sucesso")
	return c.Redirect("/")
}

// ---------- Password recovery wizard: email -> code -> reset ----------

func (h *AuthHandler) RecoveryForm(c *fiber.Ctx) error {
	return render(c, "recovery", fiber.Map{"Step": "email"})
}

func (h *AuthHandler) RecoveryRequest(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(400).Render("recovery", fiber.Map{"Step": "email", "Err": "Formato de e-mail inválido"})
	}

	code, err := h.Recovery.RequestCode(email)
	if err != nil {
		if errors.Is(err, services.ErrResendWait) {
			return c.Status(429).Render("recovery", fiber.Map{"Step": "otp", "Email": email, "Err": "Aguarde antes de reenviar o código"})
		}
		// Do not reveal whether the account exists
		applog.Security(c, "recovery.request", map[string]any{"email": email})
		return render(c, "recovery", fiber.Map{"Step": "otp", "Email": email})
	}

	// Simulated delivery: the code goes to the log, never to the response.
	applog.Info(c, "recovery.code.issued", map[string]any{"email": email, "code": code})
	return render(c, "recovery", fiber.Map{"Step": "otp", "Email": email})
}

func (h *AuthHandler) RecoveryVerify(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("email"))
	code := c.FormValue("code")
	if !okEmail || !validate.OTP(code) {
		return c.Status(400).Render("recovery", fiber.Map{"Step": "otp", "Email": email, "Err": "Código inválido"})
	}
	if err := h.Recovery.VerifyCode(email, code); err != nil {
		applog.Security(c, "recovery.verify.fail", map[string]any{"email": email})
		return c.Status(400).Render("recovery", fiber.Map{"Step": "otp", "Email": email, "Err": "Código inválido ou expirado"})
	}
	return render(c, "recovery", fiber.Map{"Step": "reset", "Email": email})
}

func (h *AuthHandler) RecoveryReset(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !okEmail || !validate.Password(pass) {
		return c.Status(400).Render("recovery", fiber.Map{"Step": "reset", "Email": email, "Err": "Senha fraca"})
	}
	if pass != c.FormValue("confirm") {
		return c.Status(400).Render("recovery", fiber.Map{"Step": "reset", "Email": email, "Err": "As senhas não correspondem"})
	}
	if err := h.Recovery.Reset(email, pass); err != nil {
		applog.Security(c, "recovery.reset.fail", map[string]any{"email": email})
		return c.Status(400).Render("recovery", fiber.Map{"Step": "email", "Err": "Não foi possível redefinir a senha"})
	}
	applog.Audit(c, "recovery.reset", map[string]any{"email": email})
	setFlash(c, "Senha redefinida com sucesso")
	return c.Redirect("/login")
}
