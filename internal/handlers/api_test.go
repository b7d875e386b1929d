package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/chatlite/internal/config"
)

// Сквозной сценарий в токенном режиме: регистрация двух пользователей,
// логин, создание личного чата, сообщение и повторное создание того же чата.
func TestTokenModeEndToEnd(t *testing.T) {
	r, _, _ := newTestRouter(t, newTestConfig(t, config.AuthModeToken))

	aliceID := registerUser(t, r, "alice", "pw1")
	bobID := registerUser(t, r, "bob", "pw2")

	login := func(username, password string) string {
		rr := doJSON(t, r, "POST", "/api/auth/login", gin.H{
			"username": username,
			"password": password,
		}, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("Login %s failed: %d: %s", username, rr.Code, rr.Body.String())
		}
		token, ok := decodeBody(t, rr)["token"].(string)
		if !ok || token == "" {
			t.Fatalf("Login %s returned no token", username)
		}
		return token
	}

	aliceToken := login("alice", "pw1")
	bobToken := login("bob", "pw2")

	// Без токена закрытые маршруты недоступны
	rr := doJSON(t, r, "POST", "/api/chats", gin.H{
		"participants": []string{aliceID, bobID},
		"type":         "individual",
	}, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", rr.Code)
	}

	rr = doJSON(t, r, "POST", "/api/chats", gin.H{
		"participants": []string{aliceID, bobID},
		"type":         "individual",
	}, aliceToken)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Create chat failed: %d: %s", rr.Code, rr.Body.String())
	}
	chat := decodeBody(t, rr)
	chatID := chat["id"].(string)

	rr = doJSON(t, r, "POST", "/api/messages", gin.H{
		"chatId":  chatID,
		"content": "hi",
	}, aliceToken)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Post message failed: %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, "GET", "/api/messages?chatId="+chatID, nil, bobToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("List messages failed: %d: %s", rr.Code, rr.Body.String())
	}
	messages := decodeList(t, rr)
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	if messages[0]["content"] != "hi" {
		t.Errorf("Expected content hi, got %v", messages[0]["content"])
	}
	if messages[0]["senderId"] != aliceID {
		t.Errorf("Expected sender %s, got %v", aliceID, messages[0]["senderId"])
	}

	// Боб создаёт тот же личный чат с другим порядком участников — тот же id
	rr = doJSON(t, r, "POST", "/api/chats", gin.H{
		"participants": []string{bobID, aliceID},
		"type":         "individual",
	}, bobToken)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for existing chat, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeBody(t, rr)["id"]; got != chatID {
		t.Errorf("Expected chat %s, got %v", chatID, got)
	}

	// Чат виден обоим участникам
	for _, p := range []struct {
		name, userID, token string
	}{
		{"alice", aliceID, aliceToken},
		{"bob", bobID, bobToken},
	} {
		rr = doJSON(t, r, "GET", "/api/chats?userId="+p.userID, nil, p.token)
		if rr.Code != http.StatusOK {
			t.Fatalf("List chats for %s failed: %d", p.name, rr.Code)
		}
		chats := decodeList(t, rr)
		if len(chats) != 1 || chats[0]["id"] != chatID {
			t.Errorf("Expected %s to see chat %s, got %v", p.name, chatID, chats)
		}
	}
}
