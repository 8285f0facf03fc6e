package i18n

var catalog = map[string]map[string]string{
	PortugueseBR: {
		"latency":          "Latência",
		"loss":             "Perda",
		"ping":             "Ping",
		"noData":           "Sem dados disponíveis",
		"noTraffic":        "Sem tráfego registrado",
		"noHistory":        "Sem histórico disponível",
		"anchor":           "Âncora",
		"connectionExists": "Já existe uma conexão entre esses hosts",
		"warnHostChange":   "Aviso: Mudar o Host irá destruir todos os links e âncoras conectadas ao mesmo. Deseja continuar?",
		"unmonitoredConn":  "Conexão não monitorada pelo Zabbix",
		"deviceExists":     "Já existe um dispositivo com esse host",
		"selfLink":         "Não é possível conectar um host a ele mesmo",
		"anchorDegree":     "A âncora precisa ter exatamente duas conexões",
		"invalidBackup":    "Arquivo de backup inválido",
		"notFound":         "Elemento não encontrado",
	},
	English: {
		"latency":          "Latency",
		"loss":             "Loss",
		"ping":             "Ping",
		"noData":           "No data available",
		"noTraffic":        "No traffic recorded",
		"noHistory":        "No history available",
		"anchor":           "Anchor",
		"connectionExists": "A connection already exists between these hosts",
		"warnHostChange":   "Warning: Changing the Host will wipe all connected links and anchors. Continue?",
		"unmonitoredConn":  "Connection not monitored by Zabbix",
		"deviceExists":     "A device with this host already exists",
		"selfLink":         "A host cannot be linked to itself",
		"anchorDegree":     "The anchor must have exactly two connections",
		"invalidBackup":    "Invalid backup file",
		"notFound":         "Element not found",
	},
	Spanish: {
		"latency":          "Latencia",
		"loss":             "Pérdida",
		"ping":             "Ping",
		"noData":           "Sin datos disponibles",
		"noTraffic":        "Sin tráfico registrado",
		"noHistory":        "Sin historial disponible",
		"anchor":           "Ancla",
		"connectionExists": "Ya existe una conexión entre estos hosts",
		"warnHostChange":   "Advertencia: Cambiar el host eliminará todos los enlaces y anclas conectados. ¿Continuar?",
		"unmonitoredConn":  "Conexión no monitoreada por Zabbix",
		"deviceExists":     "Ya existe un dispositivo con este host",
		"selfLink":         "No se puede conectar un host consigo mismo",
		"anchorDegree":     "El ancla debe tener exactamente dos conexiones",
		"notFound":         "Elemento no encontrado",
	},
}
