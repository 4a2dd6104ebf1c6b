package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"liveroom/internal/api"
	"liveroom/internal/service"
	"liveroom/pkg/config"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化服務
	// 房間狀態全部存在記憶體中，行程重啟後不保留
	services := service.NewServices()

	// 設置 Gin 路由
	// 創建一個默認的 Gin 路由器並設置路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	// 使用配置中指定的地址啟動 HTTP 服務器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
