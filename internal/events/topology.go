package events

// Exchanges and queues shared by every service. All of them are durable.
const (
	OrderExchange = "order_exchange"
	QueueExchange = "queue_exchange"

	OrderQueue      = "O_queue"
	OrderNotifQueue = "O_notif"
	QueueNotifQueue = "Q_notif"
	QueueLogQueue   = "Q_log"
)

// Binding patterns. A routing key is "<orderId>.<suffix>", so '*' matches the order id.
const (
	QueuePattern = "*.queue"
	NotifPattern = "*.notif"
	LogPattern   = "*.log"
)

// Binding attaches a queue to an exchange for one routing-key pattern.
type Binding struct {
	Exchange string
	Queue    string
	Pattern  string
}

// Exchanges lists every topic exchange to declare.
func Exchanges() []string {
	return []string{OrderExchange, QueueExchange}
}

// Bindings lists every queue binding to declare.
func Bindings() []Binding {
	return []Binding{
		{Exchange: OrderExchange, Queue: OrderQueue, Pattern: QueuePattern},
		{Exchange: OrderExchange, Queue: OrderNotifQueue, Pattern: NotifPattern},
		{Exchange: QueueExchange, Queue: QueueNotifQueue, Pattern: NotifPattern},
		{Exchange: QueueExchange, Queue: QueueLogQueue, Pattern: LogPattern},
	}
}

func QueueKey(orderID string) string {
	return orderID + ".queue"
}

func NotifKey(orderID string) string {
	return orderID + ".notif"
}

func LogKey(orderID string) string {
	return orderID + ".log"
}
