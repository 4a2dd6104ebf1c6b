// Package api 處理 HTTP 請求路由和處理。
//
// 這個包包含了房間控制介面的處理器（handlers）與 WebSocket 升級端點。
// 它負責將 HTTP 請求轉換為對房間實例的調用，並將結果轉換回 HTTP 響應。
package api
