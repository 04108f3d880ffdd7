package importer

// Nombres de columna aceptados por campo, en orden de preferencia.
var (
	fieldID       = []string{"id", "_id", "external_id", "codigo"}
	fieldName     = []string{"nome", "name", "nombre"}
	fieldBrand    = []string{"marca", "brand"}
	fieldDocument = []string{"cpf", "documento", "document"}
	fieldContact  = []string{"whatsapp", "contato", "contact", "celular"}
	fieldEmail    = []string{"email", "e-mail"}
	fieldPhone    = []string{"telefone", "phone"}
	fieldAddress  = []string{"endereco", "address", "direccion"}

	fieldModelRef  = []string{"modelo_id", "model_id"}
	fieldModelName = []string{"modelo", "model", "modelo_nome", "model_name"}
	fieldColor     = []string{"cor", "color"}
	fieldStorage   = []string{"memoria", "armazenamento", "storage"}
	fieldBattery   = []string{"bateria", "battery"}
	fieldIMEI      = []string{"imei", "serial"}
	fieldPrice     = []string{"preco", "price", "valor"}

	fieldCustomerRef      = []string{"cliente_id", "customer_id"}
	fieldCustomerName     = []string{"cliente_nome", "customer_name", "cliente"}
	fieldCustomerDocument = []string{"cliente_cpf", "customer_document"}
	fieldCustomerContact  = []string{"cliente_whatsapp", "customer_contact"}
	fieldTotal            = []string{"valor_total", "total"}
	fieldPayment          = []string{"forma_pagamento", "payment_method", "pagamento"}
	fieldDate             = []string{"data", "date", "data_venda"}
	fieldNote             = []string{"observacao", "note", "obs"}
	fieldProducts         = []string{"produtos", "products", "unit_ids"}
)

// Templates encabezados CSV de ejemplo por tipo.
var Templates = map[Kind]string{
	KindModels:    "id,nome,marca\n1,iPhone 15,Apple\n2,Galaxy S24,Samsung\n",
	KindProducts:  "id,modelo_id,modelo,cor,memoria,bateria,imei,preco\n10,1,iPhone 15,Preto,128GB,95%,123456789012345,\"4.500,00\"\n",
	KindCustomers: "id,nome,cpf,whatsapp,email,endereco\n7,João Silva,123.456.789-00,(11) 99999-8888,joao@email.com,Rua Exemplo 123\n",
	KindSales:     "cliente_id,cliente_nome,cliente_cpf,cliente_whatsapp,valor_total,forma_pagamento,data,observacao,produtos\n7,João Silva,123.456.789-00,(11) 99999-8888,\"4.500,00\",pix,15/03/2024,,10\n",
}
